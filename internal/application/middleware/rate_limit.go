package middleware

import (
	"context"
	"net/http"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Limiter is the part of pkg/redis.RateLimiter the middleware needs
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects callers over their request budget with 429. It keys on the resolved owner,
// falling back to the client address, so it must run after Identity.
// Limiter failures let the request through.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ip:" + c.RealIP()
			if identity := IdentityFrom(c); identity != nil {
				key = "owner:" + identity.OwnerID
			}

			allowed, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn("Rate limiter unavailable", zap.Error(err), zap.String("key", key))
				return next(c)
			}
			if !allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": msg.GetMessage("app.error.rate-limited")})
			}
			return next(c)
		}
	}
}
