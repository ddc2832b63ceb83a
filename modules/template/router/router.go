package router

import (
	"appointease/core/middleware"
	"appointease/modules/template/controller"

	"github.com/labstack/echo/v4"
)

type TemplateRouter struct {
	TemplateController *controller.TemplateController
}

func NewTemplateRouter(templateController *controller.TemplateController) *TemplateRouter {
	return &TemplateRouter{TemplateController: templateController}
}

func (r *TemplateRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	templates := privateRoutes.Group("/templates", mw.AuthMiddleware())

	// CRUD
	templates.GET("", r.TemplateController.ListTemplates)
	templates.POST("", r.TemplateController.SaveTemplate)
	templates.GET("/:id", r.TemplateController.GetTemplate)
	templates.DELETE("/:id", r.TemplateController.DeleteTemplate)

	// Stateless editor operations on drafts
	editor := templates.Group("/editor")
	editor.POST("/validate", r.TemplateController.ValidateDraft)
	editor.POST("/day/add", r.TemplateController.AddDay)
	editor.POST("/day/copy", r.TemplateController.CopyDay)
	editor.POST("/day/remove", r.TemplateController.RemoveDay)
	editor.POST("/day/move", r.TemplateController.MoveDay)
	editor.POST("/range/add", r.TemplateController.AddTimeRange)
	editor.POST("/range/update", r.TemplateController.UpdateTimeRange)
	editor.POST("/range/remove", r.TemplateController.RemoveTimeRange)
}
