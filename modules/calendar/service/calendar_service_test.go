package service

import (
	"context"
	"testing"
	"time"

	"appointease/modules/calendar/entity"

	"github.com/google/uuid"
)

type fakeCalendarRepo struct {
	ranges  map[string]entity.ScheduledTimeRange
	created []entity.ScheduledTimeRange
}

func newFakeCalendarRepo(ranges ...entity.ScheduledTimeRange) *fakeCalendarRepo {
	m := make(map[string]entity.ScheduledTimeRange, len(ranges))
	for _, r := range ranges {
		m[r.ID] = r
	}
	return &fakeCalendarRepo{ranges: m}
}

func (f *fakeCalendarRepo) ListByDate(_ context.Context, providerID uuid.UUID, d time.Time) ([]entity.ScheduledTimeRange, error) {
	var out []entity.ScheduledTimeRange
	for _, r := range f.ranges {
		if r.ProviderID == providerID && r.Date.Equal(d) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCalendarRepo) GetByID(_ context.Context, providerID uuid.UUID, id string) (*entity.ScheduledTimeRange, error) {
	r, ok := f.ranges[id]
	if !ok || r.ProviderID != providerID {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeCalendarRepo) Create(_ context.Context, ranges []entity.ScheduledTimeRange) error {
	for _, r := range ranges {
		f.ranges[r.ID] = r
		f.created = append(f.created, r)
	}
	return nil
}

func (f *fakeCalendarRepo) Delete(_ context.Context, _ uuid.UUID, id string) error {
	delete(f.ranges, id)
	return nil
}

func calDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func placed(id string, providerID uuid.UUID, day, start, end string) entity.ScheduledTimeRange {
	return entity.ScheduledTimeRange{
		ID:         id,
		ProviderID: providerID,
		Date:       calDate(day),
		StartTime:  start,
		EndTime:    end,
	}
}

func TestDragDropCopiesOntoTargetHour(t *testing.T) {
	provider := uuid.New()
	repo := newFakeCalendarRepo(placed("r1", provider, "2024-03-04", "14:00", "14:30"))
	svc := NewCalendarService(repo, NewMemorySessionStore(), nil)
	ctx := context.Background()

	session, appErr := svc.BeginDrag(ctx, provider, "r1", nil)
	if appErr != nil {
		t.Fatalf("BeginDrag: %v", appErr)
	}
	if session.State != entity.DragStateDragging {
		t.Fatalf("expected dragging state, got %s", session.State)
	}

	created, appErr := svc.Drop(ctx, provider, calDate("2024-03-06"), 16)
	if appErr != nil {
		t.Fatalf("Drop: %v", appErr)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 copied range, got %d", len(created))
	}
	got := created[0]
	if got.StartTime != "16:00" || got.EndTime != "16:30" {
		t.Fatalf("got %s-%s, want 16:00-16:30", got.StartTime, got.EndTime)
	}
	if !got.Date.Equal(calDate("2024-03-06")) {
		t.Fatalf("copied onto %s, want 2024-03-06", got.Date)
	}
	if got.ID == "r1" {
		t.Fatalf("copy kept the source id")
	}

	// the source range is untouched
	src, _ := repo.GetByID(ctx, provider, "r1")
	if src == nil || src.StartTime != "14:00" {
		t.Fatalf("source range changed: %+v", src)
	}
}

func TestDragDropRejectsSameDate(t *testing.T) {
	provider := uuid.New()
	repo := newFakeCalendarRepo(placed("r1", provider, "2024-03-04", "14:00", "14:30"))
	svc := NewCalendarService(repo, NewMemorySessionStore(), nil)
	ctx := context.Background()

	if _, appErr := svc.BeginDrag(ctx, provider, "r1", nil); appErr != nil {
		t.Fatalf("BeginDrag: %v", appErr)
	}
	if _, appErr := svc.Drop(ctx, provider, calDate("2024-03-04"), 16); appErr == nil {
		t.Fatalf("expected same-date drop to be rejected")
	}
	if len(repo.created) != 0 {
		t.Fatalf("rejected drop must not create ranges, created %d", len(repo.created))
	}
}

func TestDragCarriesWholeSelection(t *testing.T) {
	provider := uuid.New()
	repo := newFakeCalendarRepo(
		placed("r1", provider, "2024-03-04", "09:15", "10:15"),
		placed("r2", provider, "2024-03-04", "11:00", "11:45"),
	)
	svc := NewCalendarService(repo, NewMemorySessionStore(), nil)
	ctx := context.Background()

	session, appErr := svc.BeginDrag(ctx, provider, "r1", []string{"r1", "r2"})
	if appErr != nil {
		t.Fatalf("BeginDrag: %v", appErr)
	}
	if len(session.Carried) != 2 {
		t.Fatalf("expected 2 carried, got %d", len(session.Carried))
	}

	created, appErr := svc.Drop(ctx, provider, calDate("2024-03-05"), 13)
	if appErr != nil {
		t.Fatalf("Drop: %v", appErr)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 copies, got %d", len(created))
	}

	times := map[string]string{}
	for _, r := range created {
		times[r.StartTime] = r.EndTime
	}
	if times["13:15"] != "14:15" || times["13:00"] != "13:45" {
		t.Fatalf("unexpected copied times: %v", times)
	}
}

func TestCancelDragDiscardsSession(t *testing.T) {
	provider := uuid.New()
	repo := newFakeCalendarRepo(placed("r1", provider, "2024-03-04", "14:00", "14:30"))
	svc := NewCalendarService(repo, NewMemorySessionStore(), nil)
	ctx := context.Background()

	if _, appErr := svc.BeginDrag(ctx, provider, "r1", nil); appErr != nil {
		t.Fatalf("BeginDrag: %v", appErr)
	}
	if appErr := svc.CancelDrag(ctx, provider); appErr != nil {
		t.Fatalf("CancelDrag: %v", appErr)
	}
	if _, appErr := svc.Drop(ctx, provider, calDate("2024-03-06"), 16); appErr == nil {
		t.Fatalf("expected drop after cancel to fail")
	}
	if len(repo.created) != 0 {
		t.Fatalf("cancelled drag must not create ranges")
	}
}

func TestDropWithoutDragFails(t *testing.T) {
	provider := uuid.New()
	svc := NewCalendarService(newFakeCalendarRepo(), NewMemorySessionStore(), nil)

	if _, appErr := svc.Drop(context.Background(), provider, calDate("2024-03-06"), 16); appErr == nil {
		t.Fatalf("expected error when no drag is in progress")
	}
}

func TestBeginDragUnknownRange(t *testing.T) {
	provider := uuid.New()
	svc := NewCalendarService(newFakeCalendarRepo(), NewMemorySessionStore(), nil)

	if _, appErr := svc.BeginDrag(context.Background(), provider, "missing", nil); appErr == nil {
		t.Fatalf("expected error for unknown range")
	}
}
