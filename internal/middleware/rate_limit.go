package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/vocab/internal/errs"
	"github.com/deppfellow/vocab/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const loginKeyPrefix = "vocab:ratelimit:login:"

// hitCounter counts hits on key inside a fixed window and returns the
// running total. The window starts on the first hit.
type hitCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisCounter struct {
	client *redis.Client
}

func (r redisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimitMiddleware bounds login attempts per client IP. It needs Redis;
// without it, or when Redis errors, requests pass through.
type RateLimitMiddleware struct {
	server  *server.Server
	counter hitCounter
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	r := &RateLimitMiddleware{server: s}
	if s.Redis != nil {
		r.counter = redisCounter{client: s.Redis}
	}
	return r
}

// Login limits the route it wraps to RateLimit.LoginRequests calls per
// LoginWindow for each client IP.
func (r *RateLimitMiddleware) Login() echo.MiddlewareFunc {
	limit := int64(r.server.Config.RateLimit.LoginRequests)
	window := r.server.Config.RateLimit.LoginWindow

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limit <= 0 || r.counter == nil {
			return next
		}

		return func(c echo.Context) error {
			key := loginKeyPrefix + c.RealIP()

			count, err := r.counter.Hit(c.Request().Context(), key, window)
			if err != nil {
				GetLogger(c).Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			if count > limit {
				r.RecordRateLimitHit(c.Path())
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				return errs.NewTooManyRequestsError(
					fmt.Sprintf("Too many login attempts, try again in %s", window))
			}

			return next(c)
		}
	}
}

func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	r.server.LoggerService.RecordEvent("RateLimitHit", map[string]interface{}{
		"endpoint": endpoint,
	})
}
