// README: Request logging middleware.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	applog "saina/internal/log"
)

func Logging() gin.HandlerFunc {
	logger := applog.Component("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
