package router

import (
	"appointease/core/middleware"
	"appointease/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	CalendarController *controller.CalendarController
}

func NewCalendarRouter(calendarController *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{CalendarController: calendarController}
}

func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	calendar := privateRoutes.Group("/calendar", mw.AuthMiddleware())

	calendar.GET("/days/:date", r.CalendarController.GetDay)
	calendar.POST("/ranges", r.CalendarController.CreateRange)
	calendar.DELETE("/ranges/:id", r.CalendarController.DeleteRange)

	calendar.POST("/drag", r.CalendarController.BeginDrag)
	calendar.POST("/drag/drop", r.CalendarController.Drop)
	calendar.DELETE("/drag", r.CalendarController.CancelDrag)
}
