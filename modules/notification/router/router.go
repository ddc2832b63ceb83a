package router

import (
	"appointease/core/middleware"
	"appointease/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	NotificationController *controller.NotificationController
}

func NewNotificationRouter(notificationController *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{NotificationController: notificationController}
}

func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	notifications := privateRoutes.Group("/notifications", mw.AuthMiddleware())

	notifications.GET("", r.NotificationController.GetMyNotifications)
	notifications.GET("/unread", r.NotificationController.CountUnread)
	notifications.PATCH("/:id/read", r.NotificationController.MarkAsRead)
}
