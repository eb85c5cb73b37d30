package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redisClient *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

// Limit allows at most limit requests per window for each caller. Callers are identified
// by user id once AuthMiddleware has run, by client IP otherwise.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		caller := c.GetString(UserIDKey)
		if caller == "" {
			caller = c.ClientIP()
		}
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, caller)

		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			log.Printf("rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		// first hit opens the window
		if count == 1 {
			if err := rl.redisClient.Expire(c, key, window).Err(); err != nil {
				log.Printf("rate limiter window for %s not set: %v", key, err)
			}
		}

		if count > int64(limit) {
			ttl, err := rl.redisClient.TTL(c, key).Result()
			// a counter left without expiry would block the caller for good
			if err == nil && ttl < 0 {
				if err := rl.redisClient.Expire(c, key, window).Err(); err != nil {
					log.Printf("rate limiter window for %s not set: %v", key, err)
				}
				ttl = window
			}

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"error":       "Too many requests",
				"retry_after": fmt.Sprintf("%.0f seconds", ttl.Seconds()),
			})
			return
		}
		c.Next()
	}
}
