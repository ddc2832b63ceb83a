package service

import (
	"fmt"

	"appointease/core/utils"
	"appointease/modules/calendar/entity"
)

// The drag gesture is an explicit two-state machine per provider session:
// Idle -> Dragging on BeginDrag, Dragging -> Idle on Drop or Cancel. Session
// storage is behind SessionStore so the engine itself stays pure.

// ShiftRange translates one carried range onto a target hour anchor: the
// adjusted start keeps the original minute but takes the target slot's hour,
// and the adjusted end is the start plus the original duration, rolling
// minutes into hours as needed. The original duration is always preserved.
func ShiftRange(r entity.ScheduledTimeRange, targetHour int) (start, end string, err error) {
	if targetHour < 0 || targetHour > 23 {
		return "", "", fmt.Errorf("invalid target hour %d", targetHour)
	}
	origStart, err := utils.ParseClock(r.StartTime)
	if err != nil {
		return "", "", err
	}
	origEnd, err := utils.ParseClock(r.EndTime)
	if err != nil {
		return "", "", err
	}
	duration := origEnd - origStart
	if duration <= 0 {
		return "", "", fmt.Errorf("range %s has no duration", r.ID)
	}

	adjStart := targetHour*60 + origStart%60
	adjEnd := adjStart + duration
	return utils.FormatClock(adjStart), utils.FormatClock(adjEnd), nil
}

// carriedSet resolves what a drag gesture picks up: the selection set when
// multi-select is active and the dragged range is part of it, otherwise just
// the dragged range.
func carriedSet(dragged entity.ScheduledTimeRange, selection []entity.ScheduledTimeRange) []entity.ScheduledTimeRange {
	for _, s := range selection {
		if s.ID == dragged.ID {
			out := make([]entity.ScheduledTimeRange, len(selection))
			copy(out, selection)
			return out
		}
	}
	return []entity.ScheduledTimeRange{dragged}
}
