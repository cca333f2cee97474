package router

import (
	"github.com/labstack/echo/v4"

	"stylemate/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupClosetRouter(e, authMiddleware)
	SetupDeckRouter(e, authMiddleware)
	SetupRequestRouter(e, authMiddleware)
	SetupMatchRouter(e, authMiddleware)
	SetupTransactionRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
