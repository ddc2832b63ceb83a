package notification

import (
	"appointease/core/database"
	"appointease/core/middleware"
	"appointease/modules/notification/controller"
	"appointease/modules/notification/repository"
	"appointease/modules/notification/router"
	"appointease/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes. The service
// is returned so the worker can register its task handlers on it.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
