package service

import (
	"context"
	"strings"
	"testing"

	"appointease/modules/notification/entity"
	"appointease/modules/notification/tasks"

	"github.com/google/uuid"
)

type fakeNotificationRepo struct {
	created []entity.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) GetByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, userID uuid.UUID, id int64) error {
	for i := range f.created {
		if f.created[i].UserID == userID && f.created[i].ID == id {
			f.created[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.created {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func TestHandleScheduleSubmittedTask(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)
	userID := uuid.New()

	task, err := tasks.NewScheduleSubmittedTask(tasks.ScheduleSubmittedPayload{
		UserID:      userID.String(),
		EventID:     "evt-1",
		EventName:   "Spring Clinic",
		Assignments: 3,
	})
	if err != nil {
		t.Fatalf("NewScheduleSubmittedTask: %v", err)
	}

	if err := svc.HandleScheduleSubmittedTask(context.Background(), task); err != nil {
		t.Fatalf("HandleScheduleSubmittedTask: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.created))
	}
	n := repo.created[0]
	if n.UserID != userID || n.Type != entity.TypeScheduleSubmitted {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if !strings.Contains(n.Message, "Spring Clinic") {
		t.Fatalf("message does not name the event: %q", n.Message)
	}
}

func TestHandleRangesCopiedTask(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)
	userID := uuid.New()

	task, err := tasks.NewRangesCopiedTask(tasks.RangesCopiedPayload{
		UserID:     userID.String(),
		TargetDate: "2024-03-06",
		Count:      2,
	})
	if err != nil {
		t.Fatalf("NewRangesCopiedTask: %v", err)
	}

	if err := svc.HandleRangesCopiedTask(context.Background(), task); err != nil {
		t.Fatalf("HandleRangesCopiedTask: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.created))
	}
	n := repo.created[0]
	if n.Type != entity.TypeRangesCopied {
		t.Fatalf("type = %q", n.Type)
	}
	for _, want := range []string{"2", "2024-03-06"} {
		if !strings.Contains(n.Message, want) {
			t.Fatalf("message %q does not mention %q", n.Message, want)
		}
	}
}

func TestHandleTaskBadPayload(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{})

	task, err := tasks.NewRangesCopiedTask(tasks.RangesCopiedPayload{UserID: "not-a-uuid"})
	if err != nil {
		t.Fatalf("NewRangesCopiedTask: %v", err)
	}
	if err := svc.HandleRangesCopiedTask(context.Background(), task); err == nil {
		t.Fatalf("expected error for malformed user id")
	}
}

func TestMarkAsReadAndCount(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)
	userID := uuid.New()
	ctx := context.Background()

	n := &entity.Notification{UserID: userID, Title: "t", Message: "m", Type: entity.TypeRangesCopied}
	if appErr := svc.Create(ctx, n); appErr != nil {
		t.Fatalf("Create: %v", appErr)
	}

	count, appErr := svc.CountUnread(ctx, userID)
	if appErr != nil {
		t.Fatalf("CountUnread: %v", appErr)
	}
	if count != 1 {
		t.Fatalf("unread = %d, want 1", count)
	}

	if appErr := svc.MarkAsRead(ctx, userID, repo.created[0].ID); appErr != nil {
		t.Fatalf("MarkAsRead: %v", appErr)
	}
	count, _ = svc.CountUnread(ctx, userID)
	if count != 0 {
		t.Fatalf("unread after read = %d, want 0", count)
	}
}
