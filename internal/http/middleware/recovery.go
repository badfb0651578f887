// README: Recovery middleware.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	applog "saina/internal/log"
)

func Recovery() gin.HandlerFunc {
	logger := applog.Component("http")
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("handler panicked")
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
