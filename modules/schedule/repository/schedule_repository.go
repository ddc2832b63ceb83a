package repository

import (
	"context"
	"database/sql"

	"appointease/core/database"
	"appointease/core/logger"
	"appointease/modules/schedule/entity"

	"github.com/google/uuid"
)

// ScheduleRepository persists events and their schedule plans (events and
// event_schedules tables).
type ScheduleRepository struct {
	DB database.Database
}

func NewScheduleRepository(db database.Database) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

type ScheduleRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event, assignments []entity.EventSchedule) error
	GetEventByID(ctx context.Context, providerID, id uuid.UUID) (*entity.Event, error)
	ListEventsByProvider(ctx context.Context, providerID uuid.UUID) ([]entity.Event, error)
	ListAssignments(ctx context.Context, eventID uuid.UUID) ([]entity.EventSchedule, error)
	DeleteEvent(ctx context.Context, providerID, id uuid.UUID) error
}

// CreateEvent writes the event row and its assignments in one transaction.
func (r *ScheduleRepository) CreateEvent(ctx context.Context, event *entity.Event, assignments []entity.EventSchedule) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("ScheduleRepository:CreateEvent:BeginTx", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO events (id, provider_id, name, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`, event.ID, event.ProviderID, event.Name, event.Description, event.Status); err != nil {
		logger.Error("ScheduleRepository:CreateEvent:InsertEvent", err)
		return err
	}

	for _, a := range assignments {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO event_schedules (id, event_id, template_id, template_name, start_date, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, event.ID, a.TemplateID, a.TemplateName, a.StartDate, a.Order); err != nil {
			logger.Error("ScheduleRepository:CreateEvent:InsertAssignment", err)
			return err
		}
	}

	return tx.Commit()
}

func (r *ScheduleRepository) GetEventByID(ctx context.Context, providerID, id uuid.UUID) (*entity.Event, error) {
	query := `
		SELECT id, provider_id, name, description, status, created_at, updated_at
		FROM events WHERE id = $1 AND provider_id = $2
	`
	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id, providerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ScheduleRepository:GetEventByID", err)
		return nil, err
	}
	return &event, nil
}

func (r *ScheduleRepository) ListEventsByProvider(ctx context.Context, providerID uuid.UUID) ([]entity.Event, error) {
	query := `
		SELECT id, provider_id, name, description, status, created_at, updated_at
		FROM events WHERE provider_id = $1
		ORDER BY created_at DESC
	`
	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, providerID); err != nil {
		logger.Error("ScheduleRepository:ListEventsByProvider", err)
		return nil, err
	}
	return events, nil
}

func (r *ScheduleRepository) ListAssignments(ctx context.Context, eventID uuid.UUID) ([]entity.EventSchedule, error) {
	query := `
		SELECT id, event_id, template_id, template_name, start_date, position
		FROM event_schedules WHERE event_id = $1
		ORDER BY position
	`
	var assignments []entity.EventSchedule
	if err := r.DB.SelectContext(ctx, &assignments, query, eventID); err != nil {
		logger.Error("ScheduleRepository:ListAssignments", err)
		return nil, err
	}
	return assignments, nil
}

func (r *ScheduleRepository) DeleteEvent(ctx context.Context, providerID, id uuid.UUID) error {
	err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1 AND provider_id = $2`, id, providerID)
	if err != nil {
		logger.Error("ScheduleRepository:DeleteEvent", err)
	}
	return err
}
