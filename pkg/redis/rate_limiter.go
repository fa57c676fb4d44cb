package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// slidingWindowScript trims entries older than the window, then admits the request
// when the remaining count is below the limit. Returns 1 when admitted, 0 otherwise.
const slidingWindowScript = `
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window_nanos = tonumber(ARGV[2])
	local now_nanos = tonumber(ARGV[3])
	local member = ARGV[4]
	local ttl_seconds = tonumber(ARGV[5])

	redis.call("ZREMRANGEBYSCORE", key, "-inf", now_nanos - window_nanos)
	if redis.call("ZCARD", key) >= limit then
		return 0
	end

	redis.call("ZADD", key, now_nanos, member)
	redis.call("EXPIRE", key, ttl_seconds)
	return 1
`

// RateLimiterOptions represents options for rate limiting
type RateLimiterOptions struct {
	// Limit is the number of requests admitted per Window
	Limit int
	// Window is the length of the sliding window
	Window time.Duration
	// Namespace prefixes every limiter key
	Namespace string
}

// NewRateLimiterOptions creates rate limiter options admitting limit requests per minute
func NewRateLimiterOptions(limit int) *RateLimiterOptions {
	return &RateLimiterOptions{
		Limit:     limit,
		Window:    time.Minute,
		Namespace: "rate-limit",
	}
}

func (rlo *RateLimiterOptions) WithWindow(window time.Duration) *RateLimiterOptions {
	rlo.Window = window
	return rlo
}

// Validate validates the rate limiter options
func (rlo *RateLimiterOptions) Validate() error {
	if rlo.Limit <= 0 {
		return fmt.Errorf("invalid limit: %d, must be positive", rlo.Limit)
	}
	if rlo.Window < time.Second {
		return fmt.Errorf("invalid window: %v, must be at least one second", rlo.Window)
	}
	return nil
}

// RateLimiter is a distributed sliding-window rate limiter keyed by caller
type RateLimiter struct {
	client *Client
	opts   *RateLimiterOptions
}

// NewRateLimiter creates a new distributed rate limiter
func NewRateLimiter(client *Client, opts *RateLimiterOptions) (*RateLimiter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &RateLimiter{client: client, opts: opts}, nil
}

// Allow records a request for key and reports whether it fits in the current window
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now()
	admitted, err := rl.client.Eval(ctx, slidingWindowScript,
		[]string{BuildCacheKey(rl.opts.Namespace, key)},
		rl.opts.Limit,
		rl.opts.Window.Nanoseconds(),
		now.UnixNano(),
		uuid.NewString(),
		int(rl.opts.Window.Seconds())+1,
	)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate rate limiter: %w", err)
	}
	return admitted == 1, nil
}
