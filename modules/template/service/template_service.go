package service

import (
	"context"
	"strings"
	"time"

	"appointease/core/cache"
	"appointease/core/constants"
	"appointease/core/errors"
	"appointease/core/logger"
	"appointease/core/utils"
	"appointease/modules/template/entity"
	"appointease/modules/template/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// TemplateServiceInterface exposes persisted-template operations. Editor
// operations are the pure functions in editor.go; this service owns the save
// gate, storage and the per-owner list cache.
type TemplateServiceInterface interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]entity.Template, *errors.AppError)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Template, *errors.AppError)
	Save(ctx context.Context, ownerID uuid.UUID, draft entity.Template) (*entity.Template, []DayValidation, *errors.AppError)
	Delete(ctx context.Context, ownerID, id uuid.UUID) *errors.AppError
}

type TemplateService struct {
	repo  repository.TemplateRepositoryInterface
	cache cache.ICache
}

func NewTemplateService(repo repository.TemplateRepositoryInterface, c cache.ICache) *TemplateService {
	return &TemplateService{repo: repo, cache: c}
}

func listCacheKey(ownerID uuid.UUID) string {
	return constants.RedisKeyTemplateList + ownerID.String()
}

func (s *TemplateService) List(ctx context.Context, ownerID uuid.UUID) ([]entity.Template, *errors.AppError) {
	var cached []entity.Template
	hit, err := s.cache.GetJSON(ctx, listCacheKey(ownerID), &cached)
	if err != nil {
		logger.Warn("TemplateService:List:CacheGet", "error", err)
	}
	if hit {
		return cached, nil
	}

	templates, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		logger.Error("TemplateService:List:ListByOwner", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list templates", err)
	}

	if err := s.cache.SetJSON(ctx, listCacheKey(ownerID), templates, constants.TemplateCacheTTL); err != nil {
		logger.Warn("TemplateService:List:CacheSet", "error", err)
	}
	return templates, nil
}

func (s *TemplateService) Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Template, *errors.AppError) {
	tmpl, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		logger.Error("TemplateService:Get:GetByID", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load template", err)
	}
	if tmpl == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "template not found", nil)
	}
	return tmpl, nil
}

// Save persists a draft. The save gate from the editor applies: non-empty
// name, at least one day, and every day valid. On a validation failure the
// day validations are returned and nothing is written.
func (s *TemplateService) Save(ctx context.Context, ownerID uuid.UUID, draft entity.Template) (*entity.Template, []DayValidation, *errors.AppError) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil, nil, errors.NewAppError(errors.ErrInvalidInput, "template name is required", nil)
	}
	if len(draft.DaySchedules) == 0 {
		return nil, nil, errors.NewAppError(errors.ErrInvalidInput, "template must have at least one day", nil)
	}
	if validation := ValidateTemplate(draft); len(validation) > 0 {
		return nil, validation, errors.NewAppError(errors.ErrInvalidInput, "template has invalid day schedules", nil)
	}

	tmpl := draft.Clone()
	tmpl.Name = name
	tmpl.OwnerID = ownerID
	tmpl.Slug = slug.Make(name)
	if tmpl.ID == uuid.Nil {
		tmpl.ID = uuid.New()
	}
	tmpl.UpdatedAt = time.Now().UTC()
	if tmpl.CreatedAt.IsZero() {
		tmpl.CreatedAt = tmpl.UpdatedAt
	}
	normalize(&tmpl)

	if err := s.repo.Save(ctx, &tmpl); err != nil {
		logger.Error("TemplateService:Save:RepoSave", err)
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "failed to save template", err)
	}

	if err := s.cache.Delete(ctx, listCacheKey(ownerID)); err != nil {
		logger.Warn("TemplateService:Save:CacheInvalidate", "error", err)
	}

	logger.Info("TemplateService:Save:Success", "owner_id", ownerID, "template_id", tmpl.ID, "days", len(tmpl.DaySchedules))
	return &tmpl, nil, nil
}

func (s *TemplateService) Delete(ctx context.Context, ownerID, id uuid.UUID) *errors.AppError {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		logger.Error("TemplateService:Delete", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete template", err)
	}
	if err := s.cache.Delete(ctx, listCacheKey(ownerID)); err != nil {
		logger.Warn("TemplateService:Delete:CacheInvalidate", "error", err)
	}
	return nil
}

// normalize assigns identities to editor-created days and ranges that arrive
// without one, re-contiguates day indexes and sorts each day.
func normalize(t *entity.Template) {
	for i := range t.DaySchedules {
		day := &t.DaySchedules[i]
		if day.ID == "" {
			day.ID = utils.GenerateID()
		}
		day.DayIndex = i
		for j := range day.TimeRanges {
			if day.TimeRanges[j].ID == "" {
				day.TimeRanges[j].ID = utils.GenerateID()
			}
		}
		sortRanges(day.TimeRanges)
	}
}
