package template

import (
	"appointease/core/cache"
	"appointease/core/database"
	"appointease/core/middleware"
	"appointease/modules/template/controller"
	"appointease/modules/template/repository"
	"appointease/modules/template/router"
	"appointease/modules/template/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the template module and registers routes.
func Init(e *echo.Echo, db database.Database, c cache.ICache, mw *middleware.Middleware) {
	repo := repository.NewTemplateRepository(db)
	svc := service.NewTemplateService(repo, c)
	ctrl := controller.NewTemplateController(svc)
	rtr := router.NewTemplateRouter(ctrl)

	rtr.Setup(e, mw)
}
