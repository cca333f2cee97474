package router

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/adapter/api/handler"
	"stylemate/internal/adapter/api/middleware"
)

func SetupTransactionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	transactionHandler := handler.GetTransactionHandler()

	matches := e.Group("/v1/matches")
	matches.Use(authMiddleware.Authenticate)

	matches.PUT("/:matchId/transaction/details", transactionHandler.SubmitDetails)

	transactions := e.Group("/v1/transactions")
	transactions.Use(authMiddleware.Authenticate)

	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("/:transactionId/complete", transactionHandler.Complete)
	transactions.POST("/:transactionId/cancel", transactionHandler.Cancel)
}
