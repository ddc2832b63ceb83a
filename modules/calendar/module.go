package calendar

import (
	"appointease/core/cache"
	"appointease/core/database"
	"appointease/core/middleware"
	"appointease/modules/calendar/controller"
	"appointease/modules/calendar/repository"
	"appointease/modules/calendar/router"
	"appointease/modules/calendar/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the calendar module and registers routes. Drag sessions
// live in redis so an abandoned gesture expires on its own.
func Init(e *echo.Echo, db database.Database, c cache.ICache, mw *middleware.Middleware, taskClient *asynq.Client) {
	repo := repository.NewCalendarRepository(db)
	sessions := service.NewRedisSessionStore(c)
	svc := service.NewCalendarService(repo, sessions, taskClient)
	ctrl := controller.NewCalendarController(svc)
	rtr := router.NewCalendarRouter(ctrl)

	rtr.Setup(e, mw)
}
