package service

import (
	"testing"

	"appointease/modules/calendar/entity"
)

func scheduled(id, start, end string) entity.ScheduledTimeRange {
	return entity.ScheduledTimeRange{ID: id, StartTime: start, EndTime: end}
}

func TestShiftRange(t *testing.T) {
	tests := []struct {
		name       string
		rng        entity.ScheduledTimeRange
		targetHour int
		wantStart  string
		wantEnd    string
	}{
		{"keeps minute, takes target hour", scheduled("r1", "14:00", "14:30"), 16, "16:00", "16:30"},
		{"non-zero minute preserved", scheduled("r1", "09:15", "10:45"), 13, "13:15", "14:45"},
		{"minutes roll into the next hour", scheduled("r1", "10:40", "11:30"), 8, "08:40", "09:30"},
		{"end clamps at end of day", scheduled("r1", "09:30", "11:30"), 23, "23:30", "23:59"},
		{"midnight hour", scheduled("r1", "14:20", "15:20"), 0, "00:20", "01:20"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end, err := ShiftRange(tc.rng, tc.targetHour)
			if err != nil {
				t.Fatalf("ShiftRange: %v", err)
			}
			if start != tc.wantStart || end != tc.wantEnd {
				t.Fatalf("got %s-%s, want %s-%s", start, end, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

func TestShiftRangeRejectsBadInput(t *testing.T) {
	if _, _, err := ShiftRange(scheduled("r1", "14:00", "14:30"), 24); err == nil {
		t.Fatalf("expected error for hour out of range")
	}
	if _, _, err := ShiftRange(scheduled("r1", "14:00", "14:30"), -1); err == nil {
		t.Fatalf("expected error for negative hour")
	}
	if _, _, err := ShiftRange(scheduled("r1", "14:00", "14:00"), 10); err == nil {
		t.Fatalf("expected error for zero-duration range")
	}
	if _, _, err := ShiftRange(scheduled("r1", "2pm", "14:30"), 10); err == nil {
		t.Fatalf("expected error for invalid clock text")
	}
}

func TestCarriedSet(t *testing.T) {
	dragged := scheduled("r1", "09:00", "10:00")
	other := scheduled("r2", "11:00", "12:00")

	t.Run("dragged inside selection carries whole selection", func(t *testing.T) {
		got := carriedSet(dragged, []entity.ScheduledTimeRange{dragged, other})
		if len(got) != 2 {
			t.Fatalf("expected 2 carried, got %d", len(got))
		}
	})

	t.Run("dragged outside selection carries only itself", func(t *testing.T) {
		got := carriedSet(dragged, []entity.ScheduledTimeRange{other})
		if len(got) != 1 || got[0].ID != "r1" {
			t.Fatalf("expected only the dragged range, got %v", got)
		}
	})

	t.Run("no selection carries the dragged range", func(t *testing.T) {
		got := carriedSet(dragged, nil)
		if len(got) != 1 || got[0].ID != "r1" {
			t.Fatalf("expected only the dragged range, got %v", got)
		}
	})
}
