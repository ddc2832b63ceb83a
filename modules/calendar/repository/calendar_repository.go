package repository

import (
	"context"
	"database/sql"
	"time"

	"appointease/core/database"
	"appointease/modules/calendar/entity"

	"github.com/google/uuid"
)

type CalendarRepositoryInterface interface {
	ListByDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]entity.ScheduledTimeRange, error)
	GetByID(ctx context.Context, providerID uuid.UUID, rangeID string) (*entity.ScheduledTimeRange, error)
	Create(ctx context.Context, ranges []entity.ScheduledTimeRange) error
	Delete(ctx context.Context, providerID uuid.UUID, rangeID string) error
}

type CalendarRepository struct {
	db database.Database
}

func NewCalendarRepository(db database.Database) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) ListByDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]entity.ScheduledTimeRange, error) {
	query := `
		SELECT id, provider_id, scheduled_date, start_time, end_time, template_id, created_at
		FROM scheduled_ranges
		WHERE provider_id = $1 AND scheduled_date = $2
		ORDER BY start_time, id`

	var ranges []entity.ScheduledTimeRange
	if err := r.db.SelectContext(ctx, &ranges, query, providerID, date); err != nil {
		return nil, err
	}
	return ranges, nil
}

func (r *CalendarRepository) GetByID(ctx context.Context, providerID uuid.UUID, rangeID string) (*entity.ScheduledTimeRange, error) {
	query := `
		SELECT id, provider_id, scheduled_date, start_time, end_time, template_id, created_at
		FROM scheduled_ranges
		WHERE provider_id = $1 AND id = $2`

	var rng entity.ScheduledTimeRange
	if err := r.db.GetContext(ctx, &rng, query, providerID, rangeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rng, nil
}

func (r *CalendarRepository) Create(ctx context.Context, ranges []entity.ScheduledTimeRange) error {
	if len(ranges) == 0 {
		return nil
	}

	tx, err := r.db.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO scheduled_ranges (id, provider_id, scheduled_date, start_time, end_time, template_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, rng := range ranges {
		if _, err := tx.ExecContext(ctx, query,
			rng.ID, rng.ProviderID, rng.Date, rng.StartTime, rng.EndTime, rng.TemplateID, rng.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *CalendarRepository) Delete(ctx context.Context, providerID uuid.UUID, rangeID string) error {
	return r.db.ExecContext(ctx, `DELETE FROM scheduled_ranges WHERE provider_id = $1 AND id = $2`, providerID, rangeID)
}
