package service

import (
	"sort"

	"appointease/core/utils"
	"appointease/modules/schedule/entity"
	templateentity "appointease/modules/template/entity"
)

// Project maps one assignment onto absolute calendar dates: each day schedule
// lands on startDate + dayIndex days, and each of its time ranges becomes one
// ProjectedSlot tagged with the template name and assignment id. Pure and
// deterministic.
func Project(assignment entity.EventSchedule, tmpl templateentity.Template) []entity.ProjectedSlot {
	slots := make([]entity.ProjectedSlot, 0, len(tmpl.DaySchedules))
	for _, day := range tmpl.DaySchedules {
		date := assignment.StartDate.AddDate(0, 0, day.DayIndex)
		for _, r := range day.TimeRanges {
			slots = append(slots, entity.ProjectedSlot{
				Date:               date,
				StartTime:          r.StartTime,
				EndTime:            r.EndTime,
				SourceTemplateName: tmpl.Name,
				AssignmentID:       assignment.ID,
				DayIndex:           day.DayIndex,
			})
		}
	}
	sortSlots(slots)
	return slots
}

// ProjectAll flattens the projections of every assignment into one list
// grouped by date and, within each date, sorted by start time ascending.
// Templates are looked up by assignment TemplateID; assignments whose
// template is missing are skipped.
func ProjectAll(assignments []entity.EventSchedule, templates map[string]templateentity.Template) []entity.ProjectedSlot {
	var slots []entity.ProjectedSlot
	for _, a := range assignments {
		tmpl, ok := templates[a.TemplateID.String()]
		if !ok {
			continue
		}
		slots = append(slots, Project(a, tmpl)...)
	}
	sortSlots(slots)
	return slots
}

// sortSlots orders by date, then start time, then assignment id for a stable
// total order.
func sortSlots(slots []entity.ProjectedSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		a, errA := utils.ParseClock(slots[i].StartTime)
		b, errB := utils.ParseClock(slots[j].StartTime)
		if errA != nil || errB != nil {
			return errB != nil && errA == nil
		}
		if a != b {
			return a < b
		}
		return slots[i].AssignmentID < slots[j].AssignmentID
	})
}
