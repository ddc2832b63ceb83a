package booking

import (
	"appointease/core/database"
	"appointease/core/middleware"
	"appointease/modules/booking/controller"
	"appointease/modules/booking/router"
	"appointease/modules/booking/service"
	templaterepo "appointease/modules/template/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the booking module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	templates := templaterepo.NewTemplateRepository(db)
	svc := service.NewBookingService(templates)
	ctrl := controller.NewBookingController(svc)
	rtr := router.NewBookingRouter(ctrl)

	rtr.Setup(e, mw)
}
