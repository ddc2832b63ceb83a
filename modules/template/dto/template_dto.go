package dto

import (
	"time"

	"appointease/modules/template/entity"
	"appointease/modules/template/service"
)

// ===================== Request DTOs =====================

// TemplateDraft is the editor working copy exchanged with the client. It
// mirrors the entity shape minus ownership fields.
type TemplateDraft struct {
	ID           string               `json:"id,omitempty"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	DaySchedules []entity.DaySchedule `json:"day_schedules"`
}

// EditorDayRequest targets one day of a draft.
type EditorDayRequest struct {
	Template TemplateDraft `json:"template"`
	DayID    string        `json:"day_id"`
	// Direction is only used by the move operation: "up" or "down".
	Direction string `json:"direction,omitempty"`
}

// EditorRangeRequest targets one time range of a draft.
type EditorRangeRequest struct {
	Template TemplateDraft `json:"template"`
	DayID    string        `json:"day_id"`
	RangeID  string        `json:"range_id,omitempty"`
	// Field/Value are only used by the update operation. Field is
	// "start_time" or "end_time"; Value is "HH:MM".
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// EditorDraftRequest carries just a draft (validate, save).
type EditorDraftRequest struct {
	Template TemplateDraft `json:"template"`
}

// ===================== Response DTOs =====================

// EditorResponse is the atomic (draft, validation) pair every editor
// operation returns.
type EditorResponse struct {
	Template   TemplateDraft           `json:"template"`
	Validation []service.DayValidation `json:"validation"`
	CanSave    bool                    `json:"can_save"`
}

// TemplateResponse is the persisted-template read model.
type TemplateResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Slug         string               `json:"slug"`
	Description  string               `json:"description,omitempty"`
	DaySchedules []entity.DaySchedule `json:"day_schedules"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func NewTemplateResponse(t *entity.Template) *TemplateResponse {
	return &TemplateResponse{
		ID:           t.ID.String(),
		Name:         t.Name,
		Slug:         t.Slug,
		Description:  t.Description,
		DaySchedules: t.DaySchedules,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
