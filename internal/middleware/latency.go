package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Latency delays the handler by d to mimic a slow upstream. A zero duration
// disables it. The delay ends early if the client goes away.
func Latency(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}
