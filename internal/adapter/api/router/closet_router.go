package router

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/adapter/api/handler"
	"stylemate/internal/adapter/api/middleware"
)

func SetupClosetRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	closetHandler := handler.GetClosetHandler()

	closet := e.Group("/v1/closet")
	closet.Use(authMiddleware.Authenticate)

	closet.GET("", closetHandler.ListCloset)
	closet.POST("", closetHandler.AddItem)
	closet.PUT("/:itemId", closetHandler.UpdateItem)
	closet.DELETE("/:itemId", closetHandler.DeleteItem)

	closet.POST("/tag-suggestions", closetHandler.SuggestTags)
}
