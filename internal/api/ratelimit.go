package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimiter throttles per-user request rates through Redis. The counter is
// a plain INCR with an expiry set on first increment, so one window's worth
// of requests shares one key.
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a limiter over an existing Redis client. A nil
// client disables limiting entirely.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow reports whether the user may perform the action within the window.
func (rl *RateLimiter) Allow(ctx context.Context, userID, action string, limit int, window time.Duration) (bool, error) {
	if rl.client == nil {
		return true, nil
	}
	key := fmt.Sprintf("ratelimit:%s:%s", userID, action)

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if count == 1 {
		rl.client.Expire(ctx, key, window)
	}
	return count <= int64(limit), nil
}

// Middleware limits each user to limit requests per window on the routes it
// wraps. Redis errors fail open; a throttling outage should not take the
// games down with it.
func (rl *RateLimiter) Middleware(action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ctxUserID)
		if userID == "" {
			c.Next()
			return
		}

		allowed, err := rl.Allow(c.Request.Context(), userID, action, limit, window)
		if err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Rate limit check failed")
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			return
		}
		c.Next()
	}
}
