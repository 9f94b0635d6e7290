package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"evervoice_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	maxRequests     = 100
	rateLimitWindow = 1 * time.Minute
)

// GlobalRateLimiter caps requests per client IP over a sliding window in
// redis. This is transport-level abuse protection; the per-plan quotas
// live in the quota service.
func GlobalRateLimiter(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:site:%s", clientIP(c.Request))

		allowed, err := checkRateLimit(c, redisClient, key)
		if err != nil {
			// Redis being down should not take the API down with it.
			logger.Warn("rate limiter unavailable, letting request through", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, wait a minute"})
			return
		}

		c.Next()
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func checkRateLimit(c *gin.Context, redisClient *redis.Client, key string) (bool, error) {
	ctx := c.Request.Context()

	current, err := redisClient.Get(ctx, key).Int64()
	if err != nil && err != redis.Nil {
		return false, err
	}

	if current >= int64(maxRequests) {
		return false, nil
	}

	pipe := redisClient.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rateLimitWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(maxRequests), nil
}
