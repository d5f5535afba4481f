package router

import (
	"github.com/labstack/echo/v4"

	"paws/internal/adapter/api/handler"
	"paws/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, notificationHandler *handler.NotificationHandler, authMiddleware *middleware.AuthMiddleware) {
	notificationGroup := e.Group("/v1/notifications")
	notificationGroup.Use(authMiddleware.Authenticate)

	notificationGroup.GET("", notificationHandler.List)
	notificationGroup.PUT("/:id/read", notificationHandler.MarkRead)
	notificationGroup.DELETE("", notificationHandler.Clear)
	notificationGroup.DELETE("/:id", notificationHandler.Clear)
}
