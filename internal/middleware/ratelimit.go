package middleware

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/skyline/config"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var now = time.Now

// RateLimit is a fixed-window per-IP counter kept in Redis. It fails open:
// when Redis errors, the request goes through.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.Enabled || rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	window := cfg.Window()

	return func(c *gin.Context) {
		current := now()
		windowStart := current.Truncate(window)
		key := rateKey(cfg.Prefix, c.ClientIP(), windowStart)
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("ratelimit: redis error for key=%s: %v", key, err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.Printf("ratelimit: expire failed for key=%s: %v", key, err)
			}
		}

		remaining := int64(cfg.Requests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.Requests) {
			retry := int(math.Ceil(windowStart.Add(window).Sub(current).Seconds()))
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "Too many requests.",
			})
			return
		}
		c.Next()
	}
}

func rateKey(prefix, ip string, windowStart time.Time) string {
	return fmt.Sprintf("%s:ip:%s:%d", prefix, ip, windowStart.Unix())
}
