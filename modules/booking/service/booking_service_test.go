package service

import (
	"context"
	"testing"
	"time"

	"appointease/core/config"
	templateentity "appointease/modules/template/entity"

	"github.com/google/uuid"
)

type fakeTemplateRepo struct {
	templates map[uuid.UUID]templateentity.Template
}

func newFakeTemplateRepo(templates ...templateentity.Template) *fakeTemplateRepo {
	m := make(map[uuid.UUID]templateentity.Template, len(templates))
	for _, t := range templates {
		m[t.ID] = t
	}
	return &fakeTemplateRepo{templates: m}
}

func (f *fakeTemplateRepo) Save(_ context.Context, tmpl *templateentity.Template) error {
	f.templates[tmpl.ID] = *tmpl
	return nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, ownerID, id uuid.UUID) (*templateentity.Template, error) {
	t, ok := f.templates[id]
	if !ok || t.OwnerID != ownerID {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeTemplateRepo) GetBySlug(_ context.Context, slug string) (*templateentity.Template, error) {
	for _, t := range f.templates {
		if t.Slug == slug {
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeTemplateRepo) ListByOwner(_ context.Context, _ uuid.UUID) ([]templateentity.Template, error) {
	return nil, nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, _, id uuid.UUID) error {
	delete(f.templates, id)
	return nil
}

func bookableTemplate(owner uuid.UUID) templateentity.Template {
	return templateentity.Template{
		ID:      uuid.New(),
		OwnerID: owner,
		Name:    "Morning Clinic",
		Slug:    "morning-clinic",
		DaySchedules: []templateentity.DaySchedule{
			{ID: "d0", DayIndex: 0, TimeRanges: []templateentity.TimeRange{
				{ID: "r0", StartTime: "09:00", EndTime: "10:00"},
			}},
			{ID: "d1", DayIndex: 1, TimeRanges: []templateentity.TimeRange{
				{ID: "r1", StartTime: "14:00", EndTime: "15:00"},
			}},
		},
	}
}

func TestGetPersonalBookingURL(t *testing.T) {
	config.Set(&config.Config{Server: config.ServerConfig{PublicBaseURL: "https://book.example.com/"}})

	owner := uuid.New()
	tmpl := bookableTemplate(owner)
	svc := NewBookingService(newFakeTemplateRepo(tmpl))

	resp, appErr := svc.GetPersonalBookingURL(context.Background(), owner, tmpl.ID)
	if appErr != nil {
		t.Fatalf("GetPersonalBookingURL: %v", appErr)
	}
	if resp.BookingURL != "https://book.example.com/book/morning-clinic" {
		t.Fatalf("url = %q", resp.BookingURL)
	}
}

func TestGetPersonalBookingURLUnknownTemplate(t *testing.T) {
	config.Set(&config.Config{Server: config.ServerConfig{PublicBaseURL: "https://book.example.com"}})

	svc := NewBookingService(newFakeTemplateRepo())
	if _, appErr := svc.GetPersonalBookingURL(context.Background(), uuid.New(), uuid.New()); appErr == nil {
		t.Fatalf("expected not-found error")
	}
}

func TestGetAvailabilityBySlug(t *testing.T) {
	owner := uuid.New()
	tmpl := bookableTemplate(owner)
	svc := NewBookingService(newFakeTemplateRepo(tmpl))

	start, _ := time.Parse("2006-01-02", "2024-05-06")
	resp, appErr := svc.GetAvailabilityBySlug(context.Background(), "morning-clinic", start)
	if appErr != nil {
		t.Fatalf("GetAvailabilityBySlug: %v", appErr)
	}
	if resp.TemplateName != "Morning Clinic" {
		t.Fatalf("template name = %q", resp.TemplateName)
	}
	if len(resp.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(resp.Slots))
	}
	if resp.Slots[0].Date != "2024-05-06" || resp.Slots[0].StartTime != "09:00" {
		t.Fatalf("slot 0 = %+v", resp.Slots[0])
	}
	if resp.Slots[1].Date != "2024-05-07" || resp.Slots[1].StartTime != "14:00" {
		t.Fatalf("slot 1 = %+v", resp.Slots[1])
	}
}

func TestGetAvailabilityUnknownSlug(t *testing.T) {
	svc := NewBookingService(newFakeTemplateRepo())
	if _, appErr := svc.GetAvailabilityBySlug(context.Background(), "nope", time.Now()); appErr == nil {
		t.Fatalf("expected not-found error")
	}
}
