package controller

import (
	"appointease/core/constants"
	"appointease/core/controller"
	"appointease/core/errors"
	"appointease/core/logger"
	"appointease/core/utils"
	"appointease/modules/calendar/dto"
	"appointease/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CalendarController handles scheduled range and drag/copy HTTP requests.
type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarServiceInterface
}

func NewCalendarController(svc service.CalendarServiceInterface) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: svc,
	}
}

func (c *CalendarController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// GetDay handles GET /calendar/days/:date
// @Summary List a day's scheduled ranges
// @Description Get all scheduled time ranges for one calendar date, time-sorted
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.DayResponse
// @Failure 400 {object} errors.AppError
// @Router /private/calendar/days/{date} [get]
func (c *CalendarController) GetDay(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	date, err := utils.ParseDate(ctx.Param("date"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid date")
	}

	ranges, appErr := c.CalendarService.ListDay(ctx.Request().Context(), providerID, date)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.DayResponse{
		Date:   utils.FormatDate(date),
		Ranges: dto.NewRangeResponses(ranges),
	}, "Success")
}

// CreateRange handles POST /calendar/ranges
// @Summary Create a scheduled range
// @Description Place a single time range on a calendar date
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateRangeRequest true "Range to create"
// @Success 200 {object} dto.RangeResponse
// @Failure 400 {object} errors.AppError
// @Router /private/calendar/ranges [post]
func (c *CalendarController) CreateRange(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateRangeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid date")
	}

	rng, appErr := c.CalendarService.CreateRange(ctx.Request().Context(), providerID, date, req.StartTime, req.EndTime, req.TemplateID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	logger.Info("CalendarController:CreateRange:Success", "range_id", rng.ID)
	return c.SuccessResponse(ctx, dto.NewRangeResponse(*rng), "Success")
}

// DeleteRange handles DELETE /calendar/ranges/:id
// @Summary Delete a scheduled range
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param id path string true "Range ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/ranges/{id} [delete]
func (c *CalendarController) DeleteRange(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := c.CalendarService.DeleteRange(ctx.Request().Context(), providerID, ctx.Param("id")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Range deleted")
}

// BeginDrag handles POST /calendar/drag
// @Summary Begin a drag gesture
// @Description Start dragging a scheduled range; a multi-select containing it is carried whole
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BeginDragRequest true "Range being dragged"
// @Success 200 {object} dto.DragSessionResponse
// @Failure 400 {object} errors.AppError
// @Router /private/calendar/drag [post]
func (c *CalendarController) BeginDrag(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.BeginDragRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.RangeID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "range_id is required")
	}

	session, appErr := c.CalendarService.BeginDrag(ctx.Request().Context(), providerID, req.RangeID, req.SelectionIDs)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.DragSessionResponse{
		State:      string(session.State),
		SourceDate: utils.FormatDate(session.SourceDate),
		Carried:    len(session.Carried),
	}, "Success")
}

// Drop handles POST /calendar/drag/drop
// @Summary Drop the dragged ranges onto a target slot
// @Description Copy the carried ranges to the target date anchored at the target hour; same-day drops are rejected
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.DropRequest true "Drop target"
// @Success 200 {object} dto.DropResponse
// @Failure 400 {object} errors.AppError
// @Router /private/calendar/drag/drop [post]
func (c *CalendarController) Drop(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.DropRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	targetDate, err := utils.ParseDate(req.TargetDate)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid target date")
	}

	created, appErr := c.CalendarService.Drop(ctx.Request().Context(), providerID, targetDate, req.TargetHour)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.DropResponse{
		TargetDate: utils.FormatDate(targetDate),
		Copied:     len(created),
		Ranges:     dto.NewRangeResponses(created),
	}, "Success")
}

// CancelDrag handles DELETE /calendar/drag
// @Summary Cancel the drag gesture
// @Description Discard the in-flight drag without changing any schedule
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /private/calendar/drag [delete]
func (c *CalendarController) CancelDrag(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := c.CalendarService.CancelDrag(ctx.Request().Context(), providerID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Drag cancelled")
}
