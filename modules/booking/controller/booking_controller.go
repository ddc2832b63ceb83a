package controller

import (
	"time"

	"appointease/core/constants"
	"appointease/core/controller"
	"appointease/core/errors"
	"appointease/core/utils"
	"appointease/modules/booking/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BookingController struct {
	controller.BaseController
	BookingService service.BookingServiceInterface
}

func NewBookingController(svc service.BookingServiceInterface) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		BookingService: svc,
	}
}

func (c *BookingController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// GetPersonalBookingURL handles GET /booking/url/:templateId
// @Summary Get the shareable booking URL for a template
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param templateId path string true "Template ID"
// @Success 200 {object} dto.PersonalBookingURLResponse
// @Failure 404 {object} errors.AppError
// @Router /private/booking/url/{templateId} [get]
func (c *BookingController) GetPersonalBookingURL(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	templateID, err := uuid.Parse(ctx.Param("templateId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid template id")
	}

	resp, appErr := c.BookingService.GetPersonalBookingURL(ctx.Request().Context(), ownerID, templateID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Success")
}

// GetAvailability handles GET /booking/:slug (public)
// @Summary Get public availability for a booking page
// @Description Project the template behind the slug from a start date (defaults to today)
// @Tags Booking
// @Produce json
// @Param slug path string true "Booking page slug"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 404 {object} errors.AppError
// @Router /public/booking/{slug} [get]
func (c *BookingController) GetAvailability(ctx echo.Context) error {
	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := ctx.QueryParam("start_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid start date")
		}
		startDate = parsed
	}

	resp, appErr := c.BookingService.GetAvailabilityBySlug(ctx.Request().Context(), ctx.Param("slug"), startDate)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Success")
}
