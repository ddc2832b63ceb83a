package controller

import (
	"appointease/core/constants"
	"appointease/core/controller"
	"appointease/core/errors"
	"appointease/core/utils"
	"appointease/modules/schedule/dto"
	"appointease/modules/schedule/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ScheduleController handles event schedule plan HTTP requests.
type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
}

func NewScheduleController(svc service.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: svc,
	}
}

func (c *ScheduleController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

func planInput(req dto.PlanRequest) (service.PlanInput, error) {
	in := service.PlanInput{
		Name:        req.Name,
		Description: req.Description,
		Assignments: make([]service.AssignmentInput, 0, len(req.Assignments)),
	}
	for _, a := range req.Assignments {
		templateID, err := uuid.Parse(a.TemplateID)
		if err != nil {
			return service.PlanInput{}, err
		}
		in.Assignments = append(in.Assignments, service.AssignmentInput{
			ID:         a.ID,
			TemplateID: templateID,
			StartDate:  a.StartDate,
			Order:      a.Order,
		})
	}
	return in, nil
}

// Preview handles POST /schedules/preview
// @Summary Preview a schedule plan
// @Description Project the plan's assignments onto calendar dates, grouped by date and time-sorted
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PlanRequest true "Schedule plan"
// @Success 200 {object} dto.PreviewResponse
// @Failure 400 {object} errors.AppError
// @Router /private/schedules/preview [post]
func (c *ScheduleController) Preview(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.PlanRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	in, err := planInput(req)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid template ID")
	}

	slots, appErr := c.ScheduleService.Preview(ctx.Request().Context(), providerID, in)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.PreviewResponse{Days: dto.GroupSlots(slots)}, "Success")
}

// Validate handles POST /schedules/validate
// @Summary Validate a schedule plan
// @Description Run overlap and chronological-order checks per assignment
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PlanRequest true "Schedule plan"
// @Success 200 {object} dto.ValidationResponse
// @Failure 400 {object} errors.AppError
// @Router /private/schedules/validate [post]
func (c *ScheduleController) Validate(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.PlanRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	in, err := planInput(req)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid template ID")
	}

	checks, appErr := c.ScheduleService.Validate(ctx.Request().Context(), providerID, in)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	valid := len(checks) > 0
	for _, check := range checks {
		if !check.Valid {
			valid = false
			break
		}
	}
	return c.SuccessResponse(ctx, dto.ValidationResponse{Checks: checks, Valid: valid}, "Success")
}

// Submit handles POST /schedules
// @Summary Submit a schedule plan as a new event
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PlanRequest true "Event and schedule plan"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} errors.AppError
// @Router /private/schedules [post]
func (c *ScheduleController) Submit(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.PlanRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	in, err := planInput(req)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid template ID")
	}

	event, checks, appErr := c.ScheduleService.Submit(ctx.Request().Context(), providerID, in)
	if appErr != nil {
		if len(checks) > 0 {
			return c.BadRequest(appErr.Code, appErr.Message, checks)
		}
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.NewEventResponse(event, nil), "Event created successfully")
}

// ListEvents handles GET /schedules/events
// @Summary List the provider's events
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.EventResponse
// @Router /private/schedules/events [get]
func (c *ScheduleController) ListEvents(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	events, appErr := c.ScheduleService.ListEvents(ctx.Request().Context(), providerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	out := make([]*dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, dto.NewEventResponse(&events[i], nil))
	}
	return c.SuccessResponse(ctx, out, "Success")
}

// GetEvent handles GET /schedules/events/:id
// @Summary Get an event with its schedule plan
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} errors.AppError
// @Router /private/schedules/events/{id} [get]
func (c *ScheduleController) GetEvent(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	event, assignments, appErr := c.ScheduleService.GetEvent(ctx.Request().Context(), providerID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.NewEventResponse(event, assignments), "Success")
}
