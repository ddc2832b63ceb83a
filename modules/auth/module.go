package auth

import (
	"appointease/core/cache"
	"appointease/core/database"
	"appointease/core/middleware"
	"appointease/modules/auth/controller"
	"appointease/modules/auth/repository"
	"appointease/modules/auth/router"
	"appointease/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes.
func Init(e *echo.Echo, db database.Database, c cache.ICache, mw *middleware.Middleware) {
	repo := repository.NewUserRepository(db)
	svc := service.NewAuthService(repo, c)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
