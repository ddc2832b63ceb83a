package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledTimeRange is a concrete slot placed on a provider's calendar. It
// may originate from a template projection or from a drag/copy, but stands
// alone once created.
type ScheduledTimeRange struct {
	ID         string     `db:"id" json:"id"`
	ProviderID uuid.UUID  `db:"provider_id" json:"provider_id"`
	Date       time.Time  `db:"scheduled_date" json:"date"`
	StartTime  string     `db:"start_time" json:"start_time"`
	EndTime    string     `db:"end_time" json:"end_time"`
	TemplateID *uuid.UUID `db:"template_id" json:"template_id,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// DragState is the phase of a drag gesture.
type DragState string

const (
	DragStateIdle     DragState = "idle"
	DragStateDragging DragState = "dragging"
)

// DragSession is the captured state of one in-flight drag gesture: the
// source day and the set of carried ranges (one, or the whole multi-select
// when the dragged range belongs to it).
type DragSession struct {
	State      DragState            `json:"state"`
	ProviderID uuid.UUID            `json:"provider_id"`
	SourceDate time.Time            `json:"source_date"`
	Carried    []ScheduledTimeRange `json:"carried"`
	StartedAt  time.Time            `json:"started_at"`
}
