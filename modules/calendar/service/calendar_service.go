package service

import (
	"context"
	"time"

	"appointease/core/errors"
	"appointease/core/logger"
	"appointease/core/utils"
	"appointease/modules/calendar/entity"
	"appointease/modules/calendar/repository"
	"appointease/modules/notification/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type CalendarServiceInterface interface {
	ListDay(ctx context.Context, providerID uuid.UUID, date time.Time) ([]entity.ScheduledTimeRange, *errors.AppError)
	CreateRange(ctx context.Context, providerID uuid.UUID, date time.Time, startTime, endTime string, templateID *uuid.UUID) (*entity.ScheduledTimeRange, *errors.AppError)
	DeleteRange(ctx context.Context, providerID uuid.UUID, rangeID string) *errors.AppError

	BeginDrag(ctx context.Context, providerID uuid.UUID, rangeID string, selectionIDs []string) (*entity.DragSession, *errors.AppError)
	Drop(ctx context.Context, providerID uuid.UUID, targetDate time.Time, targetHour int) ([]entity.ScheduledTimeRange, *errors.AppError)
	CancelDrag(ctx context.Context, providerID uuid.UUID) *errors.AppError
}

type CalendarService struct {
	repo       repository.CalendarRepositoryInterface
	sessions   SessionStore
	taskClient *asynq.Client
}

func NewCalendarService(repo repository.CalendarRepositoryInterface, sessions SessionStore, taskClient *asynq.Client) *CalendarService {
	return &CalendarService{repo: repo, sessions: sessions, taskClient: taskClient}
}

func (s *CalendarService) ListDay(ctx context.Context, providerID uuid.UUID, date time.Time) ([]entity.ScheduledTimeRange, *errors.AppError) {
	ranges, err := s.repo.ListByDate(ctx, providerID, date)
	if err != nil {
		logger.Error("CalendarService:ListDay", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list scheduled ranges", err)
	}
	return ranges, nil
}

func (s *CalendarService) CreateRange(ctx context.Context, providerID uuid.UUID, date time.Time, startTime, endTime string, templateID *uuid.UUID) (*entity.ScheduledTimeRange, *errors.AppError) {
	start, err := utils.ParseClock(startTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
	}
	end, err := utils.ParseClock(endTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
	}
	if start >= end {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start time must be before end time", nil)
	}

	r := entity.ScheduledTimeRange{
		ID:         utils.GenerateID(),
		ProviderID: providerID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
		TemplateID: templateID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, []entity.ScheduledTimeRange{r}); err != nil {
		logger.Error("CalendarService:CreateRange", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create scheduled range", err)
	}
	return &r, nil
}

func (s *CalendarService) DeleteRange(ctx context.Context, providerID uuid.UUID, rangeID string) *errors.AppError {
	if err := s.repo.Delete(ctx, providerID, rangeID); err != nil {
		logger.Error("CalendarService:DeleteRange", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete scheduled range", err)
	}
	return nil
}

// BeginDrag starts a drag gesture. The dragged range must exist and belong
// to the provider. When selectionIDs name a multi-select that includes the
// dragged range, the whole same-day selection is carried.
func (s *CalendarService) BeginDrag(ctx context.Context, providerID uuid.UUID, rangeID string, selectionIDs []string) (*entity.DragSession, *errors.AppError) {
	dragged, err := s.repo.GetByID(ctx, providerID, rangeID)
	if err != nil {
		logger.Error("CalendarService:BeginDrag:GetByID", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load range", err)
	}
	if dragged == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "scheduled range not found", nil)
	}

	var selection []entity.ScheduledTimeRange
	for _, id := range selectionIDs {
		r, err := s.repo.GetByID(ctx, providerID, id)
		if err != nil {
			logger.Error("CalendarService:BeginDrag:GetSelection", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load selection", err)
		}
		if r != nil && r.Date.Equal(dragged.Date) {
			selection = append(selection, *r)
		}
	}

	session := entity.DragSession{
		State:      entity.DragStateDragging,
		ProviderID: providerID,
		SourceDate: dragged.Date,
		Carried:    carriedSet(*dragged, selection),
		StartedAt:  time.Now().UTC(),
	}
	if err := s.sessions.Put(ctx, providerID, session); err != nil {
		logger.Error("CalendarService:BeginDrag:SessionPut", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store drag session", err)
	}

	logger.Info("CalendarService:BeginDrag:Success", "provider_id", providerID, "carried", len(session.Carried))
	return &session, nil
}

// Drop completes the gesture. Dropping onto the source date is rejected;
// otherwise every carried range is translated onto the target hour with
// its duration preserved and appended to the target day's schedule. A
// notification task records how many ranges were copied.
func (s *CalendarService) Drop(ctx context.Context, providerID uuid.UUID, targetDate time.Time, targetHour int) ([]entity.ScheduledTimeRange, *errors.AppError) {
	session, err := s.sessions.Get(ctx, providerID)
	if err != nil {
		logger.Error("CalendarService:Drop:SessionGet", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load drag session", err)
	}
	if session == nil || session.State != entity.DragStateDragging {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "no drag in progress", nil)
	}
	if targetDate.Equal(session.SourceDate) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "cannot drop onto the source day", nil)
	}

	created := make([]entity.ScheduledTimeRange, 0, len(session.Carried))
	for _, carried := range session.Carried {
		start, end, err := ShiftRange(carried, targetHour)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
		}
		created = append(created, entity.ScheduledTimeRange{
			ID:         utils.GenerateID(),
			ProviderID: providerID,
			Date:       targetDate,
			StartTime:  start,
			EndTime:    end,
			TemplateID: carried.TemplateID,
			CreatedAt:  time.Now().UTC(),
		})
	}

	if err := s.repo.Create(ctx, created); err != nil {
		logger.Error("CalendarService:Drop:Create", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to copy ranges", err)
	}
	if err := s.sessions.Delete(ctx, providerID); err != nil {
		logger.Warn("CalendarService:Drop:SessionDelete", "error", err)
	}

	s.enqueueCopied(providerID, targetDate, len(created))

	logger.Info("CalendarService:Drop:Success",
		"provider_id", providerID,
		"target_date", utils.FormatDate(targetDate),
		"copied", len(created),
	)
	return created, nil
}

// CancelDrag discards the gesture without touching any schedule. Session
// expiry in redis has the same effect.
func (s *CalendarService) CancelDrag(ctx context.Context, providerID uuid.UUID) *errors.AppError {
	if err := s.sessions.Delete(ctx, providerID); err != nil {
		logger.Error("CalendarService:CancelDrag", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to discard drag session", err)
	}
	return nil
}

func (s *CalendarService) enqueueCopied(providerID uuid.UUID, targetDate time.Time, count int) {
	if s.taskClient == nil {
		return
	}
	task, err := tasks.NewRangesCopiedTask(tasks.RangesCopiedPayload{
		UserID:     providerID.String(),
		TargetDate: utils.FormatDate(targetDate),
		Count:      count,
	})
	if err != nil {
		logger.Warn("CalendarService:enqueueCopied:NewTask", "error", err)
		return
	}
	if _, err := s.taskClient.Enqueue(task); err != nil {
		logger.Warn("CalendarService:enqueueCopied:Enqueue", "error", err)
	}
}
