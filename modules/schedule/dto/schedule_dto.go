package dto

import (
	"time"

	"appointease/modules/schedule/entity"
	"appointease/modules/schedule/service"
)

// ===================== Request DTOs =====================

// AssignmentRequest is one "apply template X from date D" entry.
type AssignmentRequest struct {
	ID         string `json:"id,omitempty"`
	TemplateID string `json:"template_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"` // YYYY-MM-DD
	Order      int    `json:"order"`
}

// PlanRequest carries an event's schedule plan for preview, validation or
// submission.
type PlanRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Assignments []AssignmentRequest `json:"assignments"`
}

// ===================== Response DTOs =====================

// PreviewResponse groups projected slots by calendar date, in date order.
type PreviewResponse struct {
	Days []PreviewDay `json:"days"`
}

type PreviewDay struct {
	Date  string                 `json:"date"`
	Slots []entity.ProjectedSlot `json:"slots"`
}

// ValidationResponse carries per-assignment verdicts.
type ValidationResponse struct {
	Checks []service.AssignmentCheck `json:"checks"`
	Valid  bool                      `json:"valid"`
}

// EventResponse is the persisted event read model.
type EventResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Status      string                 `json:"status"`
	Assignments []entity.EventSchedule `json:"assignments,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

func NewEventResponse(e *entity.Event, assignments []entity.EventSchedule) *EventResponse {
	return &EventResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Description: e.Description,
		Status:      string(e.Status),
		Assignments: assignments,
		CreatedAt:   e.CreatedAt,
	}
}

// GroupSlots buckets a date-sorted slot list into per-date groups.
func GroupSlots(slots []entity.ProjectedSlot) []PreviewDay {
	var days []PreviewDay
	for _, s := range slots {
		date := s.Date.Format("2006-01-02")
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, PreviewDay{Date: date})
		}
		days[len(days)-1].Slots = append(days[len(days)-1].Slots, s)
	}
	return days
}
