package middleware

import (
	"net/http"
	"todo-api/internal/domain/gateway/session"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const identityKey = "identity"

// Identity resolves the caller from the request headers and stores it in the echo context.
// Requests without an identity continue; the use cases reject them where one is required.
func Identity(resolver session.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := resolver.Resolve(c.Request().Context(), c.Request().Header)
			if err != nil {
				log.Error("Failed to resolve session", zap.Error(err), zap.String("uri", c.Request().RequestURI))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg.GetMessage("app.error.operation-failed")})
			}
			if identity != nil {
				c.Set(identityKey, identity)
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Identity, or nil
func IdentityFrom(c echo.Context) *model.Identity {
	identity, _ := c.Get(identityKey).(*model.Identity)
	return identity
}
