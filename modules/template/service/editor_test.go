package service

import (
	"strings"
	"testing"

	"appointease/modules/template/entity"
)

func draftWith(days ...entity.DaySchedule) entity.Template {
	return entity.Template{Name: "Workweek", DaySchedules: days}
}

func day(id string, index int, ranges ...entity.TimeRange) entity.DaySchedule {
	return entity.DaySchedule{ID: id, DayIndex: index, TimeRanges: ranges}
}

func rng(id, start, end string) entity.TimeRange {
	return entity.TimeRange{ID: id, StartTime: start, EndTime: end}
}

func TestAddDayAssignsNextIndex(t *testing.T) {
	out := AddDay(draftWith(day("d0", 0), day("d1", 1)))

	if len(out.DaySchedules) != 3 {
		t.Fatalf("expected 3 days, got %d", len(out.DaySchedules))
	}
	added := out.DaySchedules[2]
	if added.DayIndex != 2 {
		t.Fatalf("expected day index 2, got %d", added.DayIndex)
	}
	if added.ID == "" {
		t.Fatalf("expected new day to get an id")
	}
	if len(added.TimeRanges) != 0 {
		t.Fatalf("expected new day to be empty, got %d ranges", len(added.TimeRanges))
	}
}

func TestAddDayDoesNotMutateInput(t *testing.T) {
	in := draftWith(day("d0", 0))
	_ = AddDay(in)

	if len(in.DaySchedules) != 1 {
		t.Fatalf("input mutated: expected 1 day, got %d", len(in.DaySchedules))
	}
}

func TestCopyDayClonesUnderNewIdentities(t *testing.T) {
	in := draftWith(day("d0", 0, rng("r0", "09:00", "10:00"), rng("r1", "11:00", "12:00")))
	out := CopyDay(in, "d0")

	if len(out.DaySchedules) != 2 {
		t.Fatalf("expected 2 days, got %d", len(out.DaySchedules))
	}
	cp := out.DaySchedules[1]
	if cp.ID == "d0" {
		t.Fatalf("copy kept the source day id")
	}
	if cp.DayIndex != 1 {
		t.Fatalf("expected copy at index 1, got %d", cp.DayIndex)
	}
	if len(cp.TimeRanges) != 2 {
		t.Fatalf("expected 2 copied ranges, got %d", len(cp.TimeRanges))
	}
	for i, r := range cp.TimeRanges {
		src := in.DaySchedules[0].TimeRanges[i]
		if r.ID == src.ID {
			t.Fatalf("range %d kept the source id %q", i, src.ID)
		}
		if r.StartTime != src.StartTime || r.EndTime != src.EndTime {
			t.Fatalf("range %d times changed: got %s-%s, want %s-%s", i, r.StartTime, r.EndTime, src.StartTime, src.EndTime)
		}
	}
}

func TestCopyDayUnknownIDIsNoop(t *testing.T) {
	out := CopyDay(draftWith(day("d0", 0)), "missing")
	if len(out.DaySchedules) != 1 {
		t.Fatalf("expected unchanged day count, got %d", len(out.DaySchedules))
	}
}

func TestRemoveDayRecontiguatesIndexes(t *testing.T) {
	in := draftWith(day("d0", 0), day("d1", 1), day("d2", 2))
	out := RemoveDay(in, "d1")

	if len(out.DaySchedules) != 2 {
		t.Fatalf("expected 2 days, got %d", len(out.DaySchedules))
	}
	for i, d := range out.DaySchedules {
		if d.DayIndex != i {
			t.Fatalf("day %s has index %d, want %d", d.ID, d.DayIndex, i)
		}
	}
	if out.DaySchedules[0].ID != "d0" || out.DaySchedules[1].ID != "d2" {
		t.Fatalf("relative order broken: %s, %s", out.DaySchedules[0].ID, out.DaySchedules[1].ID)
	}
}

func TestMoveDay(t *testing.T) {
	tests := []struct {
		name      string
		dayID     string
		direction string
		wantOrder []string
	}{
		{"up swaps with previous", "d1", MoveUp, []string{"d1", "d0", "d2"}},
		{"down swaps with next", "d1", MoveDown, []string{"d0", "d2", "d1"}},
		{"up at top is noop", "d0", MoveUp, []string{"d0", "d1", "d2"}},
		{"down at bottom is noop", "d2", MoveDown, []string{"d0", "d1", "d2"}},
		{"unknown day is noop", "dX", MoveUp, []string{"d0", "d1", "d2"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := MoveDay(draftWith(day("d0", 0), day("d1", 1), day("d2", 2)), tc.dayID, tc.direction)
			for i, want := range tc.wantOrder {
				if out.DaySchedules[i].ID != want {
					t.Fatalf("position %d: got %s, want %s", i, out.DaySchedules[i].ID, want)
				}
				if out.DaySchedules[i].DayIndex != i {
					t.Fatalf("position %d: index %d not contiguous", i, out.DaySchedules[i].DayIndex)
				}
			}
		})
	}
}

func TestAddTimeRangeDefaults(t *testing.T) {
	tests := []struct {
		name      string
		existing  []entity.TimeRange
		wantStart string
		wantEnd   string
	}{
		{"empty day gets 09:00-10:00", nil, "09:00", "10:00"},
		{"starts 30 minutes after latest end", []entity.TimeRange{rng("r0", "09:00", "10:30")}, "11:00", "12:00"},
		{"latest end wins over ordering", []entity.TimeRange{rng("r0", "13:00", "15:00"), rng("r1", "09:00", "10:00")}, "15:30", "16:30"},
		{"gap applies after a late end", []entity.TimeRange{rng("r0", "16:00", "17:45")}, "18:15", "19:15"},
		{"both edges clamp near midnight", []entity.TimeRange{rng("r0", "22:00", "23:45")}, "23:59", "23:59"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := AddTimeRange(draftWith(day("d0", 0, tc.existing...)), "d0")
			ranges := out.DaySchedules[0].TimeRanges
			if len(ranges) != len(tc.existing)+1 {
				t.Fatalf("expected %d ranges, got %d", len(tc.existing)+1, len(ranges))
			}
			var added *entity.TimeRange
			for i := range ranges {
				known := false
				for _, e := range tc.existing {
					if ranges[i].ID == e.ID {
						known = true
						break
					}
				}
				if !known {
					added = &ranges[i]
					break
				}
			}
			if added == nil {
				t.Fatalf("added range not found")
			}
			if added.StartTime != tc.wantStart || added.EndTime != tc.wantEnd {
				t.Fatalf("got %s-%s, want %s-%s", added.StartTime, added.EndTime, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

func TestUpdateTimeRangeResortsByStart(t *testing.T) {
	in := draftWith(day("d0", 0, rng("r0", "09:00", "10:00"), rng("r1", "11:00", "12:00")))
	out := UpdateTimeRange(in, "d0", "r0", "start_time", "13:00")

	ranges := out.DaySchedules[0].TimeRanges
	if ranges[0].ID != "r1" || ranges[1].ID != "r0" {
		t.Fatalf("expected resort to [r1 r0], got [%s %s]", ranges[0].ID, ranges[1].ID)
	}
	if ranges[1].StartTime != "13:00" {
		t.Fatalf("start time not applied: %s", ranges[1].StartTime)
	}
}

func TestUpdateTimeRangeUnknownFieldIsNoop(t *testing.T) {
	in := draftWith(day("d0", 0, rng("r0", "09:00", "10:00")))
	out := UpdateTimeRange(in, "d0", "r0", "duration", "45")
	if out.DaySchedules[0].TimeRanges[0].StartTime != "09:00" {
		t.Fatalf("unknown field mutated the range")
	}
}

func TestRemoveTimeRange(t *testing.T) {
	in := draftWith(day("d0", 0, rng("r0", "09:00", "10:00"), rng("r1", "11:00", "12:00")))
	out := RemoveTimeRange(in, "d0", "r0")

	ranges := out.DaySchedules[0].TimeRanges
	if len(ranges) != 1 || ranges[0].ID != "r1" {
		t.Fatalf("expected only r1 to remain, got %v", ranges)
	}
}

func TestValidateDay(t *testing.T) {
	tests := []struct {
		name     string
		ranges   []entity.TimeRange
		wantErrs []string
	}{
		{
			"valid sorted day",
			[]entity.TimeRange{rng("r0", "09:00", "10:00"), rng("r1", "10:00", "11:00")},
			nil,
		},
		{
			"start equals end",
			[]entity.TimeRange{rng("r0", "09:00", "09:00")},
			[]string{"range 1: start time must be before end time"},
		},
		{
			"adjacent overlap after sort",
			[]entity.TimeRange{rng("r0", "10:30", "12:00"), rng("r1", "09:00", "11:00")},
			[]string{"ranges 1 and 2 overlap"},
		},
		{
			"invalid clock text",
			[]entity.TimeRange{rng("r0", "9am", "10:00")},
			[]string{`range 1: invalid start time "9am"`},
		},
		{
			"mixed errors report positions after sort",
			[]entity.TimeRange{rng("r0", "12:00", "11:00"), rng("r1", "08:00", "09:30"), rng("r2", "09:00", "10:00")},
			[]string{"ranges 1 and 2 overlap", "range 3: start time must be before end time"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateDay(day("d0", 0, tc.ranges...))
			if len(got) != len(tc.wantErrs) {
				t.Fatalf("got %d errors %v, want %d %v", len(got), got, len(tc.wantErrs), tc.wantErrs)
			}
			for _, want := range tc.wantErrs {
				found := false
				for _, e := range got {
					if e == want {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("missing error %q in %v", want, got)
				}
			}
		})
	}
}

func TestValidateTemplateReportsOnlyBrokenDays(t *testing.T) {
	in := draftWith(
		day("d0", 0, rng("r0", "09:00", "10:00")),
		day("d1", 1, rng("r1", "10:00", "09:00")),
	)
	got := ValidateTemplate(in)

	if len(got) != 1 {
		t.Fatalf("expected 1 day with errors, got %d", len(got))
	}
	if got[0].DayID != "d1" || got[0].DayIndex != 1 {
		t.Fatalf("wrong day reported: %+v", got[0])
	}
	if !strings.Contains(got[0].Errors[0], "start time must be before end time") {
		t.Fatalf("unexpected error text: %v", got[0].Errors)
	}
}
