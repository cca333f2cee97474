package router

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/adapter/api/handler"
	"stylemate/internal/adapter/api/middleware"
)

func SetupRequestRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	requestHandler := handler.GetRequestHandler()

	requests := e.Group("/v1/requests")
	requests.Use(authMiddleware.Authenticate)

	requests.GET("", requestHandler.ListRequests)
	requests.POST("/:requestId/proposals", requestHandler.ProposeSwap)
	requests.POST("/:requestId/confirm", requestHandler.ConfirmSwap)
	requests.POST("/:requestId/reject", requestHandler.RejectRequest)
}
