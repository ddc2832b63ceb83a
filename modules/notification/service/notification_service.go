package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"appointease/core/errors"
	"appointease/core/logger"
	"appointease/modules/notification/entity"
	"appointease/modules/notification/repository"
	"appointease/modules/notification/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type NotificationServiceInterface interface {
	Create(ctx context.Context, notification *entity.Notification) *errors.AppError
	GetMyNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, *errors.AppError)
	MarkAsRead(ctx context.Context, userID uuid.UUID, notificationID int64) *errors.AppError
	CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError)
}

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, notification *entity.Notification) *errors.AppError {
	now := time.Now().UTC()
	notification.CreatedAt = now
	notification.UpdatedAt = now
	if notification.Data == nil {
		notification.Data = entity.JSONB{}
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to create notification", err)
	}
	return nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, *errors.AppError) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	notifications, err := s.repo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list notifications", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, notificationID int64) *errors.AppError {
	if err := s.repo.MarkAsRead(ctx, userID, notificationID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to mark notification as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInternalServer, "failed to count unread notifications", err)
	}
	return count, nil
}

// HandleScheduleSubmittedTask processes a schedule:submitted task from the
// worker and records an in-app notification for the provider.
func (s *NotificationService) HandleScheduleSubmittedTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.ScheduleSubmittedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal schedule submitted payload: %w", err)
	}
	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return fmt.Errorf("parse user id %q: %w", p.UserID, err)
	}

	notification := &entity.Notification{
		UserID:  userID,
		Title:   "Schedule submitted",
		Message: fmt.Sprintf("Your schedule %q was submitted with %d template assignments.", p.EventName, p.Assignments),
		Type:    entity.TypeScheduleSubmitted,
		Data: entity.JSONB{
			"event_id":    p.EventID,
			"assignments": p.Assignments,
		},
	}
	if appErr := s.Create(ctx, notification); appErr != nil {
		return appErr
	}

	logger.Info("NotificationService:HandleScheduleSubmittedTask:Success", "user_id", p.UserID, "event_id", p.EventID)
	return nil
}

// HandleRangesCopiedTask processes a calendar:ranges_copied task emitted
// when a drag/copy drop completes.
func (s *NotificationService) HandleRangesCopiedTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.RangesCopiedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal ranges copied payload: %w", err)
	}
	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return fmt.Errorf("parse user id %q: %w", p.UserID, err)
	}

	notification := &entity.Notification{
		UserID:  userID,
		Title:   "Time ranges copied",
		Message: fmt.Sprintf("%d time range(s) were copied to %s.", p.Count, p.TargetDate),
		Type:    entity.TypeRangesCopied,
		Data: entity.JSONB{
			"target_date": p.TargetDate,
			"count":       p.Count,
		},
	}
	if appErr := s.Create(ctx, notification); appErr != nil {
		return appErr
	}

	logger.Info("NotificationService:HandleRangesCopiedTask:Success", "user_id", p.UserID, "count", p.Count)
	return nil
}
