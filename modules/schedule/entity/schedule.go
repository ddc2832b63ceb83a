package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
)

// Event is a provider service offering whose availability is described by a
// schedule plan of template assignments.
type Event struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	ProviderID  uuid.UUID   `db:"provider_id" json:"provider_id"`
	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"description"`
	Status      EventStatus `db:"status" json:"status"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// EventSchedule is one template assignment inside an event's schedule plan:
// "apply this template starting on this date". Order is the assignment's
// position among its siblings; sibling assignments must be mutually
// non-overlapping when projected and must appear in non-decreasing start-date
// order matching Order.
type EventSchedule struct {
	ID           string    `db:"id" json:"id"`
	EventID      uuid.UUID `db:"event_id" json:"event_id"`
	TemplateID   uuid.UUID `db:"template_id" json:"template_id"`
	TemplateName string    `db:"template_name" json:"template_name"`
	StartDate    time.Time `db:"start_date" json:"start_date"`
	Order        int       `db:"position" json:"order"`
}

// ProjectedSlot is a template time range projected onto an absolute calendar
// date. Derived, never persisted.
type ProjectedSlot struct {
	Date               time.Time `json:"date"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	SourceTemplateName string    `json:"source_template_name"`
	AssignmentID       string    `json:"assignment_id"`
	DayIndex           int       `json:"day_index"`
}
