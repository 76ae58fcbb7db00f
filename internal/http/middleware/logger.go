package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request. Matched requests are keyed by route
// pattern rather than raw path so report endpoints aggregate cleanly in logs.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		log.Printf("[HTTP] request_id=%s method=%s route=%s status=%d bytes=%d latency_ms=%.3f ip=%s",
			GetRequestID(c),
			c.Request.Method,
			route,
			c.Writer.Status(),
			c.Writer.Size(),
			float64(latency.Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}
