package service

import (
	"fmt"
	"sort"

	"appointease/core/constants"
	"appointease/core/utils"
	"appointease/modules/template/entity"
)

// Editor operations transform a template draft by value: every operation
// clones its input, applies the change, re-sorts and returns the result.
// Validation is synchronous and returned together with the updated draft so
// callers always see one atomic (draft, errors) pair.

// Direction for MoveDay.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// DayValidation carries the validation errors for one day of a draft.
// Messages identify ranges by their 1-based position after sorting.
type DayValidation struct {
	DayID    string   `json:"day_id"`
	DayIndex int      `json:"day_index"`
	Errors   []string `json:"errors"`
}

// AddDay appends an empty day schedule with the next contiguous day index.
func AddDay(t entity.Template) entity.Template {
	out := t.Clone()
	out.DaySchedules = append(out.DaySchedules, entity.DaySchedule{
		ID:         utils.GenerateID(),
		DayIndex:   len(out.DaySchedules),
		TimeRanges: []entity.TimeRange{},
	})
	return out
}

// CopyDay deep-clones the identified day's ranges under new identities and
// appends the copy as the last day. Unknown dayID is a no-op.
func CopyDay(t entity.Template, dayID string) entity.Template {
	out := t.Clone()
	for _, d := range out.DaySchedules {
		if d.ID != dayID {
			continue
		}
		clone := entity.DaySchedule{
			ID:         utils.GenerateID(),
			DayIndex:   len(out.DaySchedules),
			TimeRanges: make([]entity.TimeRange, 0, len(d.TimeRanges)),
		}
		for _, r := range d.TimeRanges {
			clone.TimeRanges = append(clone.TimeRanges, entity.TimeRange{
				ID:        utils.GenerateID(),
				StartTime: r.StartTime,
				EndTime:   r.EndTime,
			})
		}
		out.DaySchedules = append(out.DaySchedules, clone)
		break
	}
	return out
}

// RemoveDay deletes the identified day and re-contiguates the remaining day
// indexes to 0..N-1, preserving relative order.
func RemoveDay(t entity.Template, dayID string) entity.Template {
	out := t.Clone()
	kept := out.DaySchedules[:0]
	for _, d := range out.DaySchedules {
		if d.ID == dayID {
			continue
		}
		kept = append(kept, d)
	}
	out.DaySchedules = kept
	reindexDays(out.DaySchedules)
	return out
}

// MoveDay swaps the identified day with its neighbor in the given direction.
// Moves past either boundary are no-ops. Day indexes are re-contiguated.
func MoveDay(t entity.Template, dayID string, direction string) entity.Template {
	out := t.Clone()
	pos := -1
	for i, d := range out.DaySchedules {
		if d.ID == dayID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return out
	}

	target := pos
	switch direction {
	case MoveUp:
		target = pos - 1
	case MoveDown:
		target = pos + 1
	}
	if target < 0 || target >= len(out.DaySchedules) || target == pos {
		return out
	}

	out.DaySchedules[pos], out.DaySchedules[target] = out.DaySchedules[target], out.DaySchedules[pos]
	reindexDays(out.DaySchedules)
	return out
}

// AddTimeRange appends a default one-hour range to the identified day. The
// default starts 30 minutes after the latest existing range's end, or at
// 09:00-10:00 when the day is empty; both edges are clamped to 23:59.
func AddTimeRange(t entity.Template, dayID string) entity.Template {
	out := t.Clone()
	for i := range out.DaySchedules {
		if out.DaySchedules[i].ID != dayID {
			continue
		}
		day := &out.DaySchedules[i]

		start := constants.DefaultRangeStart
		end := constants.DefaultRangeEnd
		if latest, ok := latestEndMinutes(day.TimeRanges); ok {
			startMin := latest + constants.NewRangeGapMinutes
			endMin := startMin + 60
			start = utils.FormatClock(startMin)
			end = utils.FormatClock(endMin)
		}

		day.TimeRanges = append(day.TimeRanges, entity.TimeRange{
			ID:        utils.GenerateID(),
			StartTime: start,
			EndTime:   end,
		})
		sortRanges(day.TimeRanges)
		break
	}
	return out
}

// UpdateTimeRange sets one field ("start_time" or "end_time") of the
// identified range and re-sorts the day by start time. Unknown fields, days
// or ranges leave the draft unchanged.
func UpdateTimeRange(t entity.Template, dayID, rangeID, field, value string) entity.Template {
	out := t.Clone()
	for i := range out.DaySchedules {
		if out.DaySchedules[i].ID != dayID {
			continue
		}
		day := &out.DaySchedules[i]
		for j := range day.TimeRanges {
			if day.TimeRanges[j].ID != rangeID {
				continue
			}
			switch field {
			case "start_time":
				day.TimeRanges[j].StartTime = value
			case "end_time":
				day.TimeRanges[j].EndTime = value
			default:
				return out
			}
			sortRanges(day.TimeRanges)
			return out
		}
		break
	}
	return out
}

// RemoveTimeRange deletes the identified range from its day.
func RemoveTimeRange(t entity.Template, dayID, rangeID string) entity.Template {
	out := t.Clone()
	for i := range out.DaySchedules {
		if out.DaySchedules[i].ID != dayID {
			continue
		}
		day := &out.DaySchedules[i]
		kept := day.TimeRanges[:0]
		for _, r := range day.TimeRanges {
			if r.ID == rangeID {
				continue
			}
			kept = append(kept, r)
		}
		day.TimeRanges = kept
		break
	}
	return out
}

// ValidateDay checks the day's ranges in start-time order and reports every
// malformed range (start >= end, or unparsable clock text) and every
// overlapping adjacent pair.
func ValidateDay(day entity.DaySchedule) []string {
	ranges := make([]entity.TimeRange, len(day.TimeRanges))
	copy(ranges, day.TimeRanges)
	sortRanges(ranges)

	var errs []string
	mins := make([][2]int, len(ranges))
	valid := make([]bool, len(ranges))

	for i, r := range ranges {
		start, errStart := utils.ParseClock(r.StartTime)
		end, errEnd := utils.ParseClock(r.EndTime)
		if errStart != nil {
			errs = append(errs, fmt.Sprintf("range %d: invalid start time %q", i+1, r.StartTime))
			continue
		}
		if errEnd != nil {
			errs = append(errs, fmt.Sprintf("range %d: invalid end time %q", i+1, r.EndTime))
			continue
		}
		if start >= end {
			errs = append(errs, fmt.Sprintf("range %d: start time must be before end time", i+1))
			continue
		}
		mins[i] = [2]int{start, end}
		valid[i] = true
	}

	for i := 1; i < len(ranges); i++ {
		if !valid[i-1] || !valid[i] {
			continue
		}
		if mins[i-1][1] > mins[i][0] {
			errs = append(errs, fmt.Sprintf("ranges %d and %d overlap", i, i+1))
		}
	}
	return errs
}

// ValidateTemplate runs ValidateDay across the draft and returns one entry
// per day that has errors.
func ValidateTemplate(t entity.Template) []DayValidation {
	var out []DayValidation
	for _, d := range t.DaySchedules {
		if errs := ValidateDay(d); len(errs) > 0 {
			out = append(out, DayValidation{DayID: d.ID, DayIndex: d.DayIndex, Errors: errs})
		}
	}
	return out
}

func reindexDays(days []entity.DaySchedule) {
	for i := range days {
		days[i].DayIndex = i
	}
}

// sortRanges orders by start time, parsed; unparsable starts sort last so
// they stay visible at the end of the day while invalid.
func sortRanges(ranges []entity.TimeRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		a, errA := utils.ParseClock(ranges[i].StartTime)
		b, errB := utils.ParseClock(ranges[j].StartTime)
		if errA != nil {
			return false
		}
		if errB != nil {
			return true
		}
		return a < b
	})
}

func latestEndMinutes(ranges []entity.TimeRange) (int, bool) {
	latest := -1
	for _, r := range ranges {
		end, err := utils.ParseClock(r.EndTime)
		if err != nil {
			continue
		}
		if end > latest {
			latest = end
		}
	}
	if latest < 0 {
		return 0, false
	}
	return latest, true
}
