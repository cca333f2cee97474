package router

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/adapter/api/handler"
	"stylemate/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("/:matchId/messages", chatHandler.ListMessages)
	chats.POST("/:matchId/messages", chatHandler.SendMessage)
}
