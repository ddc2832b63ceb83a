package service

import (
	"fmt"
	"sort"

	"appointease/core/constants"
	"appointease/core/utils"
	"appointease/modules/schedule/entity"
	templateentity "appointease/modules/template/entity"
)

// CheckOverlaps projects the candidate assignment and every other assignment
// and reports the first pair of time ranges that overlap on a shared calendar
// date, using the half-open rule (aStart < bEnd && aEnd > bStart). Returns
// nil when the candidate is conflict-free.
//
// The scan is quadratic in ranges per date; plan sizes are interactive-scale
// (tens of ranges), so no interval index is kept.
func CheckOverlaps(candidate entity.EventSchedule, others []entity.EventSchedule, templates map[string]templateentity.Template) error {
	candTmpl, ok := templates[candidate.TemplateID.String()]
	if !ok {
		return fmt.Errorf("template %s not found for assignment", candidate.TemplateID)
	}
	candSlots := Project(candidate, candTmpl)

	for _, other := range others {
		if other.ID == candidate.ID {
			continue
		}
		otherTmpl, ok := templates[other.TemplateID.String()]
		if !ok {
			continue
		}
		for _, os := range Project(other, otherTmpl) {
			for _, cs := range candSlots {
				if !cs.Date.Equal(os.Date) {
					continue
				}
				overlap, err := rangesOverlap(cs.StartTime, cs.EndTime, os.StartTime, os.EndTime)
				if err != nil {
					return err
				}
				if overlap {
					return fmt.Errorf("overlaps %q on %s (%s-%s)",
						other.TemplateName,
						os.Date.Format(constants.DateLayout),
						os.StartTime, os.EndTime)
				}
			}
		}
	}
	return nil
}

// ValidateOrder enforces the product rule that assignments are entered in
// non-decreasing start-date order: after sorting by Order, a later
// assignment whose start date precedes its predecessor's gets an error keyed
// by its id, naming the predecessor's template and date.
func ValidateOrder(assignments []entity.EventSchedule) map[string]string {
	sorted := make([]entity.EventSchedule, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	errs := make(map[string]string)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.StartDate.Before(prev.StartDate) {
			errs[cur.ID] = fmt.Sprintf("must start on or after %q (%s)",
				prev.TemplateName, utils.FormatDate(prev.StartDate))
		}
	}
	return errs
}

// AssignmentValid reports whether one assignment passes both checks against
// its siblings.
func AssignmentValid(candidate entity.EventSchedule, all []entity.EventSchedule, templates map[string]templateentity.Template) bool {
	if err := CheckOverlaps(candidate, all, templates); err != nil {
		return false
	}
	orderErrs := ValidateOrder(all)
	_, bad := orderErrs[candidate.ID]
	return !bad
}

// HasValidSchedule reports whether at least one assignment in the plan is
// valid; it gates preview generation and submission.
func HasValidSchedule(assignments []entity.EventSchedule, templates map[string]templateentity.Template) bool {
	for _, a := range assignments {
		if AssignmentValid(a, assignments, templates) {
			return true
		}
	}
	return false
}

func rangesOverlap(aStart, aEnd, bStart, bEnd string) (bool, error) {
	as, err := utils.ParseClock(aStart)
	if err != nil {
		return false, err
	}
	ae, err := utils.ParseClock(aEnd)
	if err != nil {
		return false, err
	}
	bs, err := utils.ParseClock(bStart)
	if err != nil {
		return false, err
	}
	be, err := utils.ParseClock(bEnd)
	if err != nil {
		return false, err
	}
	return as < be && ae > bs, nil
}
