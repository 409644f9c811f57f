package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

type Counter interface {
	IncrWithExpire(ctx context.Context, key string, expiration time.Duration) (int64, error)
}

type RateLimitConfig struct {
	Prefix string
	Limit  int
	Window time.Duration
	Now    func() time.Time
}

// RateLimit caps requests per client IP in fixed windows. A nil counter or
// a counter error lets the request through.
func RateLimit(counter Counter, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return func(c *gin.Context) {
		if counter == nil || cfg.Limit <= 0 {
			c.Next()
			return
		}

		now := cfg.Now()
		window := now.Unix() / int64(cfg.Window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%s:%d", cfg.Prefix, c.ClientIP(), window)

		count, err := counter.IncrWithExpire(c.Request.Context(), key, cfg.Window)
		if err != nil {
			Logger(c).Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		remaining := cfg.Limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		reset := (window + 1) * int64(cfg.Window.Seconds())

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		if int(count) > cfg.Limit {
			metrics.RateLimited.Inc()
			c.Header("Retry-After", strconv.FormatInt(reset-now.Unix(), 10))
			httperr.Business(c, httperr.CodeRateLimited)
			return
		}

		c.Next()
	}
}
