package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeRange is a same-day wall-clock span inside a day schedule. Times are
// 24h "HH:MM" strings; overnight wraparound is not supported, so a valid
// range always has StartTime < EndTime.
type TimeRange struct {
	ID        string `db:"id" json:"id"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

// DaySchedule holds the time ranges for one relative day of a template.
// DayIndex is a 0-based offset from the template's anchor date, not a
// weekday; indexes are kept contiguous (0..N-1) across day add/remove/move.
type DaySchedule struct {
	ID         string      `db:"id" json:"id"`
	DayIndex   int         `db:"day_index" json:"day_index"`
	TimeRanges []TimeRange `json:"time_ranges"`
}

// Template is a provider-owned, named set of day schedules. It exists as a
// working draft while being edited and is only persisted through Save.
type Template struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	OwnerID      uuid.UUID     `db:"owner_id" json:"owner_id"`
	Name         string        `db:"name" json:"name"`
	Slug         string        `db:"slug" json:"slug"`
	Description  string        `db:"description" json:"description"`
	DaySchedules []DaySchedule `json:"day_schedules"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// Clone deep-copies the template so editor operations can work on value
// semantics without aliasing the caller's slices.
func (t Template) Clone() Template {
	out := t
	out.DaySchedules = make([]DaySchedule, len(t.DaySchedules))
	for i, d := range t.DaySchedules {
		out.DaySchedules[i] = d.Clone()
	}
	return out
}

// Clone deep-copies the day schedule, keeping identities.
func (d DaySchedule) Clone() DaySchedule {
	out := d
	out.TimeRanges = make([]TimeRange, len(d.TimeRanges))
	copy(out.TimeRanges, d.TimeRanges)
	return out
}
