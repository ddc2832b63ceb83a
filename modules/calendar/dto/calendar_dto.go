package dto

import (
	"appointease/core/utils"
	"appointease/modules/calendar/entity"

	"github.com/google/uuid"
)

type CreateRangeRequest struct {
	Date       string     `json:"date" validate:"required"`
	StartTime  string     `json:"start_time" validate:"required"`
	EndTime    string     `json:"end_time" validate:"required"`
	TemplateID *uuid.UUID `json:"template_id,omitempty"`
}

type BeginDragRequest struct {
	RangeID      string   `json:"range_id" validate:"required"`
	SelectionIDs []string `json:"selection_ids,omitempty"`
}

type DropRequest struct {
	TargetDate string `json:"target_date" validate:"required"`
	TargetHour int    `json:"target_hour"`
}

type RangeResponse struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	TemplateID *uuid.UUID `json:"template_id,omitempty"`
}

type DayResponse struct {
	Date   string          `json:"date"`
	Ranges []RangeResponse `json:"ranges"`
}

type DragSessionResponse struct {
	State      string `json:"state"`
	SourceDate string `json:"source_date"`
	Carried    int    `json:"carried"`
}

type DropResponse struct {
	TargetDate string          `json:"target_date"`
	Copied     int             `json:"copied"`
	Ranges     []RangeResponse `json:"ranges"`
}

func NewRangeResponse(r entity.ScheduledTimeRange) RangeResponse {
	return RangeResponse{
		ID:         r.ID,
		Date:       utils.FormatDate(r.Date),
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		TemplateID: r.TemplateID,
	}
}

func NewRangeResponses(ranges []entity.ScheduledTimeRange) []RangeResponse {
	out := make([]RangeResponse, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, NewRangeResponse(r))
	}
	return out
}
