package schedule

import (
	"appointease/core/database"
	"appointease/core/middleware"
	"appointease/modules/schedule/controller"
	"appointease/modules/schedule/repository"
	"appointease/modules/schedule/router"
	"appointease/modules/schedule/service"
	templaterepo "appointease/modules/template/repository"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the schedule module and registers routes. The template
// repository is constructed here because schedule plans resolve templates by
// id at validation time.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, taskClient *asynq.Client) {
	repo := repository.NewScheduleRepository(db)
	templates := templaterepo.NewTemplateRepository(db)
	svc := service.NewScheduleService(repo, templates, taskClient)
	ctrl := controller.NewScheduleController(svc)
	rtr := router.NewScheduleRouter(ctrl)

	rtr.Setup(e, mw)
}
