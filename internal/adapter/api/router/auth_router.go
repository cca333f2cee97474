package router

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/adapter/api/handler"
	"stylemate/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	sessions := e.Group("/v1/sessions")
	sessions.Use(authMiddleware.Authenticate)

	sessions.POST("", authHandler.StartSession)
	sessions.DELETE("", authHandler.EndSession)

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", authHandler.GetProfile)
	users.PATCH("/me", authHandler.UpdateProfile)
}
