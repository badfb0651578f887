// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"

	"saina/internal/http/handlers"
	"saina/internal/http/middleware"
)

// RouterDeps carries everything the routes need.
type RouterDeps struct {
	Dialogue handlers.Dialogue
	Replier  handlers.Replier
	BotToken string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logging(), middleware.Recovery())

	webhookHandler := handlers.NewWebhookHandler(deps.Dialogue, deps.Replier, deps.BotToken)
	router.POST("/telegram/:token", webhookHandler.Handle)

	chatHandler := handlers.NewChatHandler(deps.Dialogue)
	router.POST("/api/chat", chatHandler.Chat)

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	return router
}
