package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"appointease/core/config"
	"appointease/core/errors"
	"appointease/core/logger"
	"appointease/core/utils"
	"appointease/modules/booking/dto"
	scheduleentity "appointease/modules/schedule/entity"
	scheduleservice "appointease/modules/schedule/service"
	templaterepo "appointease/modules/template/repository"

	"github.com/google/uuid"
)

type BookingServiceInterface interface {
	GetPersonalBookingURL(ctx context.Context, ownerID, templateID uuid.UUID) (*dto.PersonalBookingURLResponse, *errors.AppError)
	GetAvailabilityBySlug(ctx context.Context, slug string, startDate time.Time) (*dto.AvailabilityResponse, *errors.AppError)
}

type BookingService struct {
	templates templaterepo.TemplateRepositoryInterface
}

func NewBookingService(templates templaterepo.TemplateRepositoryInterface) *BookingService {
	return &BookingService{templates: templates}
}

// GetPersonalBookingURL returns the shareable public booking page URL for
// one of the owner's saved templates.
func (s *BookingService) GetPersonalBookingURL(ctx context.Context, ownerID, templateID uuid.UUID) (*dto.PersonalBookingURLResponse, *errors.AppError) {
	tmpl, err := s.templates.GetByID(ctx, ownerID, templateID)
	if err != nil {
		logger.Error("BookingService:GetPersonalBookingURL:GetByID", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load template", err)
	}
	if tmpl == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "template not found", nil)
	}
	if tmpl.Slug == "" {
		return nil, errors.NewAppError(errors.ErrNotFound, "template has no booking page yet", nil)
	}

	cfg, ok := config.GetSafe()
	if !ok {
		logger.Error("BookingService:GetPersonalBookingURL:ConfigNotInitialized")
		return nil, errors.NewAppError(errors.ErrInternalServer, "server configuration error", nil)
	}
	base := strings.TrimRight(cfg.Server.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	return &dto.PersonalBookingURLResponse{
		TemplateID: tmpl.ID.String(),
		Slug:       tmpl.Slug,
		BookingURL: fmt.Sprintf("%s/book/%s", base, tmpl.Slug),
	}, nil
}

// GetAvailabilityBySlug projects the slugged template's day schedules from
// startDate onto concrete dates, for the public booking page.
func (s *BookingService) GetAvailabilityBySlug(ctx context.Context, slug string, startDate time.Time) (*dto.AvailabilityResponse, *errors.AppError) {
	tmpl, err := s.templates.GetBySlug(ctx, slug)
	if err != nil {
		logger.Error("BookingService:GetAvailabilityBySlug:GetBySlug", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load template", err)
	}
	if tmpl == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking page not found", nil)
	}

	assignment := scheduleentity.EventSchedule{
		ID:           "public-" + tmpl.Slug,
		TemplateID:   tmpl.ID,
		TemplateName: tmpl.Name,
		StartDate:    startDate,
	}
	slots := scheduleservice.Project(assignment, *tmpl)

	resp := &dto.AvailabilityResponse{
		TemplateName: tmpl.Name,
		Slug:         tmpl.Slug,
		StartDate:    utils.FormatDate(startDate),
		Slots:        make([]dto.AvailabilitySlot, 0, len(slots)),
	}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, dto.AvailabilitySlot{
			Date:      utils.FormatDate(slot.Date),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}
	return resp, nil
}
