package router

import (
	"appointease/core/middleware"
	"appointease/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public")
	publicAuth := publicRoutes.Group("/auth")
	publicAuth.POST("/register", r.AuthController.Register)
	publicAuth.POST("/login", r.AuthController.Login)
	publicAuth.POST("/refresh", r.AuthController.Refresh)

	privateRoutes := v1.Group("/private")
	privateAuth := privateRoutes.Group("/auth", mw.AuthMiddleware())
	privateAuth.POST("/logout", r.AuthController.Logout)
	privateAuth.GET("/me", r.AuthController.GetMe)
}
