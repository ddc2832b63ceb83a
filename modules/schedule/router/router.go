package router

import (
	"appointease/core/middleware"
	"appointease/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

type ScheduleRouter struct {
	ScheduleController *controller.ScheduleController
}

func NewScheduleRouter(scheduleController *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{ScheduleController: scheduleController}
}

func (r *ScheduleRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	schedules := privateRoutes.Group("/schedules", mw.AuthMiddleware())

	schedules.POST("", r.ScheduleController.Submit)
	schedules.POST("/preview", r.ScheduleController.Preview)
	schedules.POST("/validate", r.ScheduleController.Validate)
	schedules.GET("/events", r.ScheduleController.ListEvents)
	schedules.GET("/events/:id", r.ScheduleController.GetEvent)
}
