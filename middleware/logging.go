package middleware

import (
	"time"

	"hotelhub/services/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one line per request. 5xx responses log at error level.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path += "?" + c.Request.URL.RawQuery
		}
		if status >= 500 {
			log.Error("%s %s %d %s %v", c.Request.Method, path, status, time.Since(start), c.Errors.Errors())
			return
		}
		log.Info("%s %s %d %s", c.Request.Method, path, status, time.Since(start))
	}
}
