package router

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/adapter/api/handler"
	"stylemate/internal/adapter/api/middleware"
	ws "stylemate/internal/infrastructure/websocket"
	"stylemate/internal/usecase"
)

func SetupWebSocketRouter(e *echo.Echo, wsManager *ws.Manager, chatUseCase *usecase.ChatUseCase, authMiddleware *middleware.AuthMiddleware) {
	wsHandler := handler.NewWebSocketHandler(wsManager, chatUseCase)

	e.GET("/ws/chats/:matchId", wsHandler.HandleChatSocket, authMiddleware.Authenticate)
}
