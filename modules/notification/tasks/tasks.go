package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task types processed by the notification worker.
const (
	TypeScheduleSubmitted = "schedule:submitted"
	TypeRangesCopied      = "calendar:ranges_copied"
)

// ScheduleSubmittedPayload announces a submitted schedule plan.
type ScheduleSubmittedPayload struct {
	UserID      string `json:"user_id"`
	EventID     string `json:"event_id"`
	EventName   string `json:"event_name"`
	Assignments int    `json:"assignments"`
}

// RangesCopiedPayload announces a completed drag/copy drop.
type RangesCopiedPayload struct {
	UserID     string `json:"user_id"`
	TargetDate string `json:"target_date"`
	Count      int    `json:"count"`
}

func NewScheduleSubmittedTask(p ScheduleSubmittedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeScheduleSubmitted, payload), nil
}

func NewRangesCopiedTask(p RangesCopiedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRangesCopied, payload), nil
}
