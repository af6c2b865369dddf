package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

// Counter is a fixed-window counter keyed by client.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit caps requests per client IP per window. Counter errors let the
// request through.
func RateLimit(counter Counter, limit int, window time.Duration, prefix string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := prefix + ":" + c.ClientIP()
		n, err := counter.Incr(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn("rate limiter error", "err", err)
			c.Next()
			return
		}
		if n > int64(limit) {
			httperr.TooManyRequests(c, "rate_limited", "Too many requests, try again later.")
			return
		}
		c.Next()
	}
}
