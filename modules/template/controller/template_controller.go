package controller

import (
	"appointease/core/constants"
	"appointease/core/controller"
	"appointease/core/errors"
	"appointease/core/utils"
	"appointease/modules/template/dto"
	"appointease/modules/template/entity"
	"appointease/modules/template/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TemplateController handles template CRUD and the stateless editor
// endpoints. Editor endpoints transform the draft sent in the request body
// and return it together with its validation result.
type TemplateController struct {
	controller.BaseController
	TemplateService service.TemplateServiceInterface
}

func NewTemplateController(svc service.TemplateServiceInterface) *TemplateController {
	return &TemplateController{
		BaseController:  controller.NewBaseController(),
		TemplateService: svc,
	}
}

func (c *TemplateController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}
	return claims.UserID, nil
}

func draftToEntity(d dto.TemplateDraft) entity.Template {
	t := entity.Template{
		Name:         d.Name,
		Description:  d.Description,
		DaySchedules: d.DaySchedules,
	}
	if d.ID != "" {
		if id, err := uuid.Parse(d.ID); err == nil {
			t.ID = id
		}
	}
	return t
}

func entityToDraft(t entity.Template) dto.TemplateDraft {
	d := dto.TemplateDraft{
		Name:         t.Name,
		Description:  t.Description,
		DaySchedules: t.DaySchedules,
	}
	if t.ID != uuid.Nil {
		d.ID = t.ID.String()
	}
	return d
}

func editorResponse(t entity.Template) dto.EditorResponse {
	validation := service.ValidateTemplate(t)
	return dto.EditorResponse{
		Template:   entityToDraft(t),
		Validation: validation,
		CanSave:    t.Name != "" && len(t.DaySchedules) > 0 && len(validation) == 0,
	}
}

// ListTemplates handles GET /templates
// @Summary List templates
// @Description List the authenticated provider's saved templates
// @Tags Template
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.TemplateResponse
// @Failure 401 {object} errors.AppError
// @Router /private/templates [get]
func (c *TemplateController) ListTemplates(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	templates, appErr := c.TemplateService.List(ctx.Request().Context(), ownerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	out := make([]*dto.TemplateResponse, 0, len(templates))
	for i := range templates {
		out = append(out, dto.NewTemplateResponse(&templates[i]))
	}
	return c.SuccessResponse(ctx, out, "Success")
}

// GetTemplate handles GET /templates/:id
// @Summary Get a template
// @Tags Template
// @Security BearerAuth
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} errors.AppError
// @Router /private/templates/{id} [get]
func (c *TemplateController) GetTemplate(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid template ID")
	}

	tmpl, appErr := c.TemplateService.Get(ctx.Request().Context(), ownerID, id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.NewTemplateResponse(tmpl), "Success")
}

// SaveTemplate handles POST /templates
// @Summary Save a template draft
// @Description Persist a draft; rejected unless the name is set, at least one day exists and every day validates
// @Tags Template
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EditorDraftRequest true "Template draft"
// @Success 200 {object} dto.TemplateResponse
// @Failure 400 {object} errors.AppError
// @Router /private/templates [post]
func (c *TemplateController) SaveTemplate(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.EditorDraftRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	saved, validation, appErr := c.TemplateService.Save(ctx.Request().Context(), ownerID, draftToEntity(req.Template))
	if appErr != nil {
		if len(validation) > 0 {
			return c.BadRequest(appErr.Code, appErr.Message, validation)
		}
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.NewTemplateResponse(saved), "Template saved successfully")
}

// DeleteTemplate handles DELETE /templates/:id
// @Summary Delete a template
// @Tags Template
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/templates/{id} [delete]
func (c *TemplateController) DeleteTemplate(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid template ID")
	}

	if appErr := c.TemplateService.Delete(ctx.Request().Context(), ownerID, id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Template deleted successfully")
}

// ===================== Editor operations =====================

// AddDay handles POST /templates/editor/day/add
// @Summary Append an empty day to a draft
// @Tags TemplateEditor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EditorDayRequest true "Draft"
// @Success 200 {object} dto.EditorResponse
// @Router /private/templates/editor/day/add [post]
func (c *TemplateController) AddDay(ctx echo.Context) error {
	var req dto.EditorDayRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	out := service.AddDay(draftToEntity(req.Template))
	return c.SuccessResponse(ctx, editorResponse(out), "Day added")
}

// CopyDay handles POST /templates/editor/day/copy
// @Summary Clone a day's ranges as a new last day
// @Tags TemplateEditor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EditorDayRequest true "Draft and day"
// @Success 200 {object} dto.EditorResponse
// @Router /private/templates/editor/day/copy [post]
func (c *TemplateController) CopyDay(ctx echo.Context) error {
	var req dto.EditorDayRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	out := service.CopyDay(draftToEntity(req.Template), req.DayID)
	return c.SuccessResponse(ctx, editorResponse(out), "Day copied")
}

// RemoveDay handles POST /templates/editor/day/remove
// @Summary Remove a day and re-contiguate day indexes
// @Tags TemplateEditor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EditorDayRequest true "Draft and day"
// @Success 200 {object} dto.EditorResponse
// @Router /private/templates/editor/day/remove [post]
func (c *TemplateController) RemoveDay(ctx echo.Context) error {
	var req dto.EditorDayRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	out := service.RemoveDay(draftToEntity(req.Template), req.DayID)
	return c.SuccessResponse(ctx, editorResponse(out), "Day removed")
}

// MoveDay handles POST /templates/editor/day/move
// @Summary Swap a day with its neighbor
// @Tags TemplateEditor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EditorDayRequest true "Draft, day and direction"
// @Success 200 {object} dto.EditorResponse
// @Router /private/templates/editor/day/move [post]
func (c *TemplateController) MoveDay(ctx echo.Context) error {
	var req dto.EditorDayRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Direction != service.MoveUp && req.Direction != service.MoveDown {
		return c.BadRequest(errors.ErrInvalidInput, "direction must be 'up' or 'down'")
	}
	out := service.MoveDay(draftToEntity(req.Template), req.DayID, req.Direction)
	return c.SuccessResponse(ctx, editorResponse(out), "Day moved")
}

// AddTimeRange handles POST /templates/editor/range/add
// @Summary Append a default time range to a day
// @Tags TemplateEditor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EditorRangeRequest true "Draft and day"
// @Success 200 {object} dto.EditorResponse
// @Router /private/templates/editor/range/add [post]
func (c *TemplateController) AddTimeRange(ctx echo.Context) error {
	var req dto.EditorRangeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	out := service.AddTimeRange(draftToEntity(req.Template), req.DayID)
	return c.SuccessResponse(ctx, editorResponse(out), "Time range added")
}

// UpdateTimeRange handles POST /templates/editor/range/update
// @Summary Update one field of a time range
// @Tags TemplateEditor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EditorRangeRequest true "Draft, range, field and value"
// @Success 200 {object} dto.EditorResponse
// @Router /private/templates/editor/range/update [post]
func (c *TemplateController) UpdateTimeRange(ctx echo.Context) error {
	var req dto.EditorRangeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Field != "start_time" && req.Field != "end_time" {
		return c.BadRequest(errors.ErrInvalidInput, "field must be 'start_time' or 'end_time'")
	}
	out := service.UpdateTimeRange(draftToEntity(req.Template), req.DayID, req.RangeID, req.Field, req.Value)
	return c.SuccessResponse(ctx, editorResponse(out), "Time range updated")
}

// RemoveTimeRange handles POST /templates/editor/range/remove
// @Summary Remove a time range from a day
// @Tags TemplateEditor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EditorRangeRequest true "Draft, day and range"
// @Success 200 {object} dto.EditorResponse
// @Router /private/templates/editor/range/remove [post]
func (c *TemplateController) RemoveTimeRange(ctx echo.Context) error {
	var req dto.EditorRangeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	out := service.RemoveTimeRange(draftToEntity(req.Template), req.DayID, req.RangeID)
	return c.SuccessResponse(ctx, editorResponse(out), "Time range removed")
}

// ValidateDraft handles POST /templates/editor/validate
// @Summary Validate a draft without saving
// @Tags TemplateEditor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EditorDraftRequest true "Draft"
// @Success 200 {object} dto.EditorResponse
// @Router /private/templates/editor/validate [post]
func (c *TemplateController) ValidateDraft(ctx echo.Context) error {
	var req dto.EditorDraftRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	return c.SuccessResponse(ctx, editorResponse(draftToEntity(req.Template)), "Success")
}
