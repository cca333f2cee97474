package router

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/adapter/api/handler"
	"stylemate/internal/adapter/api/middleware"
)

func SetupDeckRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	deckHandler := handler.GetDeckHandler()

	deck := e.Group("/v1/deck")
	deck.Use(authMiddleware.Authenticate)

	deck.POST("", deckHandler.BuildDeck)
	deck.GET("", deckHandler.GetDeck)
	deck.POST("/swipes", deckHandler.Swipe)

	likes := e.Group("/v1/likes")
	likes.Use(authMiddleware.Authenticate)

	likes.GET("", deckHandler.ListLikedItems)
	likes.DELETE("/:likedId", deckHandler.RemoveLikedItem)
}
