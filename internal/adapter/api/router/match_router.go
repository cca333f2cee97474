package router

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/adapter/api/handler"
	"stylemate/internal/adapter/api/middleware"
)

func SetupMatchRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	matchHandler := handler.GetMatchHandler()

	matches := e.Group("/v1/matches")
	matches.Use(authMiddleware.Authenticate)

	matches.GET("", matchHandler.ListMatches)
	matches.GET("/:matchId", matchHandler.GetMatch)
	matches.POST("/:matchId/cancel", matchHandler.CancelMatch)
}
