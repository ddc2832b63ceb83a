package service

import (
	"context"
	"testing"

	"appointease/modules/schedule/entity"
	templateentity "appointease/modules/template/entity"

	"github.com/google/uuid"
)

type fakeScheduleRepo struct {
	events      []entity.Event
	assignments map[uuid.UUID][]entity.EventSchedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{assignments: make(map[uuid.UUID][]entity.EventSchedule)}
}

func (f *fakeScheduleRepo) CreateEvent(_ context.Context, event *entity.Event, assignments []entity.EventSchedule) error {
	f.events = append(f.events, *event)
	f.assignments[event.ID] = assignments
	return nil
}

func (f *fakeScheduleRepo) GetEventByID(_ context.Context, providerID, id uuid.UUID) (*entity.Event, error) {
	for _, e := range f.events {
		if e.ID == id && e.ProviderID == providerID {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) ListEventsByProvider(_ context.Context, providerID uuid.UUID) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		if e.ProviderID == providerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListAssignments(_ context.Context, eventID uuid.UUID) ([]entity.EventSchedule, error) {
	return f.assignments[eventID], nil
}

func (f *fakeScheduleRepo) DeleteEvent(_ context.Context, _, id uuid.UUID) error {
	delete(f.assignments, id)
	return nil
}

type fakeTemplateLookup struct {
	templates map[uuid.UUID]templateentity.Template
}

func newFakeTemplateLookup(templates ...templateentity.Template) *fakeTemplateLookup {
	m := make(map[uuid.UUID]templateentity.Template, len(templates))
	for _, t := range templates {
		m[t.ID] = t
	}
	return &fakeTemplateLookup{templates: m}
}

func (f *fakeTemplateLookup) Save(_ context.Context, tmpl *templateentity.Template) error {
	f.templates[tmpl.ID] = *tmpl
	return nil
}

func (f *fakeTemplateLookup) GetByID(_ context.Context, ownerID, id uuid.UUID) (*templateentity.Template, error) {
	t, ok := f.templates[id]
	if !ok || t.OwnerID != ownerID {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeTemplateLookup) GetBySlug(_ context.Context, slug string) (*templateentity.Template, error) {
	for _, t := range f.templates {
		if t.Slug == slug {
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeTemplateLookup) ListByOwner(_ context.Context, _ uuid.UUID) ([]templateentity.Template, error) {
	return nil, nil
}

func (f *fakeTemplateLookup) Delete(_ context.Context, _, id uuid.UUID) error {
	delete(f.templates, id)
	return nil
}

func ownedTemplate(owner uuid.UUID, name, start, end string) templateentity.Template {
	return templateentity.Template{
		ID:      uuid.New(),
		OwnerID: owner,
		Name:    name,
		DaySchedules: []templateentity.DaySchedule{
			{ID: "d0", DayIndex: 0, TimeRanges: []templateentity.TimeRange{
				{ID: "r0", StartTime: start, EndTime: end},
			}},
		},
	}
}

func TestPreviewProjectsPlan(t *testing.T) {
	owner := uuid.New()
	morning := ownedTemplate(owner, "Morning", "09:00", "10:00")
	svc := NewScheduleService(newFakeScheduleRepo(), newFakeTemplateLookup(morning), nil)

	slots, appErr := svc.Preview(context.Background(), owner, PlanInput{
		Name: "Clinic",
		Assignments: []AssignmentInput{
			{ID: "a1", TemplateID: morning.ID, StartDate: "2024-01-01", Order: 0},
		},
	})
	if appErr != nil {
		t.Fatalf("Preview: %v", appErr)
	}
	if len(slots) != 1 || slots[0].StartTime != "09:00" {
		t.Fatalf("unexpected slots: %v", slots)
	}
}

func TestPreviewRejectsFullyInvalidPlan(t *testing.T) {
	owner := uuid.New()
	a := ownedTemplate(owner, "A", "09:00", "11:00")
	b := ownedTemplate(owner, "B", "10:00", "12:00")
	svc := NewScheduleService(newFakeScheduleRepo(), newFakeTemplateLookup(a, b), nil)

	_, appErr := svc.Preview(context.Background(), owner, PlanInput{
		Assignments: []AssignmentInput{
			{ID: "a1", TemplateID: a.ID, StartDate: "2024-01-01", Order: 0},
			{ID: "a2", TemplateID: b.ID, StartDate: "2024-01-01", Order: 1},
		},
	})
	if appErr == nil {
		t.Fatalf("expected plan with no valid assignment to be rejected")
	}
}

func TestValidateReportsPerAssignment(t *testing.T) {
	owner := uuid.New()
	a := ownedTemplate(owner, "A", "09:00", "11:00")
	b := ownedTemplate(owner, "B", "10:00", "12:00")
	c := ownedTemplate(owner, "C", "14:00", "15:00")
	svc := NewScheduleService(newFakeScheduleRepo(), newFakeTemplateLookup(a, b, c), nil)

	checks, appErr := svc.Validate(context.Background(), owner, PlanInput{
		Assignments: []AssignmentInput{
			{ID: "a1", TemplateID: a.ID, StartDate: "2024-01-01", Order: 0},
			{ID: "a2", TemplateID: b.ID, StartDate: "2024-01-01", Order: 1},
			{ID: "a3", TemplateID: c.ID, StartDate: "2023-12-01", Order: 2},
		},
	})
	if appErr != nil {
		t.Fatalf("Validate: %v", appErr)
	}
	verdict := make(map[string]AssignmentCheck, len(checks))
	for _, c := range checks {
		verdict[c.AssignmentID] = c
	}
	if verdict["a1"].OverlapError == "" || verdict["a2"].OverlapError == "" {
		t.Fatalf("overlapping pair not flagged: %+v", checks)
	}
	if verdict["a3"].OrderError == "" {
		t.Fatalf("order violation not flagged: %+v", checks)
	}
	if verdict["a3"].OverlapError != "" {
		t.Fatalf("a3 should not overlap: %+v", verdict["a3"])
	}
}

func TestSubmitPersistsValidPlan(t *testing.T) {
	owner := uuid.New()
	morning := ownedTemplate(owner, "Morning", "09:00", "10:00")
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, newFakeTemplateLookup(morning), nil)

	event, checks, appErr := svc.Submit(context.Background(), owner, PlanInput{
		Name: "Spring Clinic",
		Assignments: []AssignmentInput{
			{TemplateID: morning.ID, StartDate: "2024-01-01", Order: 0},
		},
	})
	if appErr != nil {
		t.Fatalf("Submit: %v", appErr)
	}
	if event.Status != entity.EventStatusPublished {
		t.Fatalf("status = %q", event.Status)
	}
	if len(checks) != 1 || !checks[0].Valid {
		t.Fatalf("unexpected checks: %+v", checks)
	}
	if len(repo.events) != 1 {
		t.Fatalf("event not persisted")
	}
	persisted := repo.assignments[event.ID]
	if len(persisted) != 1 || persisted[0].EventID != event.ID {
		t.Fatalf("assignments not linked to event: %+v", persisted)
	}
	if persisted[0].ID == "" {
		t.Fatalf("blank assignment id not normalized")
	}
}

func TestSubmitRejectsInvalidPlan(t *testing.T) {
	owner := uuid.New()
	a := ownedTemplate(owner, "A", "09:00", "11:00")
	b := ownedTemplate(owner, "B", "10:00", "12:00")
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, newFakeTemplateLookup(a, b), nil)

	_, checks, appErr := svc.Submit(context.Background(), owner, PlanInput{
		Name: "Broken",
		Assignments: []AssignmentInput{
			{ID: "a1", TemplateID: a.ID, StartDate: "2024-01-01", Order: 0},
			{ID: "a2", TemplateID: b.ID, StartDate: "2024-01-01", Order: 1},
		},
	})
	if appErr == nil {
		t.Fatalf("expected invalid plan to be rejected")
	}
	if len(checks) != 2 {
		t.Fatalf("expected checks returned with rejection, got %d", len(checks))
	}
	if len(repo.events) != 0 {
		t.Fatalf("rejected plan must not be persisted")
	}
}

func TestSubmitRequiresTemplateOwnership(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	tmpl := ownedTemplate(other, "Theirs", "09:00", "10:00")
	svc := NewScheduleService(newFakeScheduleRepo(), newFakeTemplateLookup(tmpl), nil)

	_, _, appErr := svc.Submit(context.Background(), owner, PlanInput{
		Name: "Clinic",
		Assignments: []AssignmentInput{
			{TemplateID: tmpl.ID, StartDate: "2024-01-01", Order: 0},
		},
	})
	if appErr == nil {
		t.Fatalf("expected unknown template for this owner to be rejected")
	}
}
