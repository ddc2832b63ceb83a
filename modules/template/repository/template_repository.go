package repository

import (
	"context"
	"database/sql"

	"appointease/core/database"
	"appointease/core/logger"
	"appointease/modules/template/entity"

	"github.com/google/uuid"
)

// TemplateRepository persists template aggregates across three tables:
// templates, template_days and template_ranges.
type TemplateRepository struct {
	DB database.Database
}

func NewTemplateRepository(db database.Database) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

type TemplateRepositoryInterface interface {
	Save(ctx context.Context, tmpl *entity.Template) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Template, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Template, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Template, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type dayRow struct {
	ID         string `db:"id"`
	TemplateID string `db:"template_id"`
	DayIndex   int    `db:"day_index"`
}

type rangeRow struct {
	ID        string `db:"id"`
	DayID     string `db:"day_id"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
}

// Save upserts the template row and replaces its day/range children in one
// transaction.
func (r *TemplateRepository) Save(ctx context.Context, tmpl *entity.Template) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("TemplateRepository:Save:BeginTx", err)
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO templates (id, owner_id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = $3, slug = $4, description = $5, updated_at = NOW()
	`
	if _, err := tx.ExecContext(ctx, query, tmpl.ID, tmpl.OwnerID, tmpl.Name, tmpl.Slug, tmpl.Description); err != nil {
		logger.Error("TemplateRepository:Save:UpsertTemplate", err)
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM template_ranges WHERE day_id IN (SELECT id FROM template_days WHERE template_id = $1)`,
		tmpl.ID); err != nil {
		logger.Error("TemplateRepository:Save:DeleteRanges", err)
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM template_days WHERE template_id = $1`, tmpl.ID); err != nil {
		logger.Error("TemplateRepository:Save:DeleteDays", err)
		return err
	}

	for _, day := range tmpl.DaySchedules {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO template_days (id, template_id, day_index) VALUES ($1, $2, $3)`,
			day.ID, tmpl.ID, day.DayIndex); err != nil {
			logger.Error("TemplateRepository:Save:InsertDay", err)
			return err
		}
		for _, tr := range day.TimeRanges {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO template_ranges (id, day_id, start_time, end_time) VALUES ($1, $2, $3, $4)`,
				tr.ID, day.ID, tr.StartTime, tr.EndTime); err != nil {
				logger.Error("TemplateRepository:Save:InsertRange", err)
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *TemplateRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Template, error) {
	query := `
		SELECT id, owner_id, name, slug, description, created_at, updated_at
		FROM templates WHERE id = $1 AND owner_id = $2
	`
	var tmpl entity.Template
	err := r.DB.GetContext(ctx, &tmpl, query, id, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TemplateRepository:GetByID", err)
		return nil, err
	}
	if err := r.loadChildren(ctx, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *TemplateRepository) GetBySlug(ctx context.Context, slug string) (*entity.Template, error) {
	query := `
		SELECT id, owner_id, name, slug, description, created_at, updated_at
		FROM templates WHERE slug = $1
	`
	var tmpl entity.Template
	err := r.DB.GetContext(ctx, &tmpl, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TemplateRepository:GetBySlug", err)
		return nil, err
	}
	if err := r.loadChildren(ctx, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *TemplateRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Template, error) {
	query := `
		SELECT id, owner_id, name, slug, description, created_at, updated_at
		FROM templates WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	var templates []entity.Template
	if err := r.DB.SelectContext(ctx, &templates, query, ownerID); err != nil {
		logger.Error("TemplateRepository:ListByOwner", err)
		return nil, err
	}
	for i := range templates {
		if err := r.loadChildren(ctx, &templates[i]); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

func (r *TemplateRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := r.DB.ExecContext(ctx, `DELETE FROM templates WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		logger.Error("TemplateRepository:Delete", err)
	}
	return err
}

// loadChildren fills the day schedules in day-index order with ranges in
// start-time order.
func (r *TemplateRepository) loadChildren(ctx context.Context, tmpl *entity.Template) error {
	var days []dayRow
	err := r.DB.SelectContext(ctx, &days,
		`SELECT id, template_id, day_index FROM template_days WHERE template_id = $1 ORDER BY day_index`,
		tmpl.ID)
	if err != nil {
		logger.Error("TemplateRepository:loadChildren:Days", err)
		return err
	}

	tmpl.DaySchedules = make([]entity.DaySchedule, 0, len(days))
	for _, d := range days {
		var ranges []rangeRow
		err := r.DB.SelectContext(ctx, &ranges,
			`SELECT id, day_id, start_time, end_time FROM template_ranges WHERE day_id = $1 ORDER BY start_time`,
			d.ID)
		if err != nil {
			logger.Error("TemplateRepository:loadChildren:Ranges", err)
			return err
		}

		day := entity.DaySchedule{ID: d.ID, DayIndex: d.DayIndex, TimeRanges: make([]entity.TimeRange, 0, len(ranges))}
		for _, tr := range ranges {
			day.TimeRanges = append(day.TimeRanges, entity.TimeRange{
				ID:        tr.ID,
				StartTime: tr.StartTime,
				EndTime:   tr.EndTime,
			})
		}
		tmpl.DaySchedules = append(tmpl.DaySchedules, day)
	}
	return nil
}
