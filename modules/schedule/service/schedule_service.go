package service

import (
	"context"
	"strings"
	"time"

	"appointease/core/errors"
	"appointease/core/logger"
	"appointease/core/utils"
	"appointease/modules/notification/tasks"
	"appointease/modules/schedule/entity"
	"appointease/modules/schedule/repository"
	templateentity "appointease/modules/template/entity"
	templaterepo "appointease/modules/template/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// AssignmentInput is one template assignment as submitted by the client.
type AssignmentInput struct {
	ID         string
	TemplateID uuid.UUID
	StartDate  string // YYYY-MM-DD
	Order      int
}

// PlanInput names the event and carries its schedule plan.
type PlanInput struct {
	Name        string
	Description string
	Assignments []AssignmentInput
}

// AssignmentCheck is the per-assignment validation verdict.
type AssignmentCheck struct {
	AssignmentID string `json:"assignment_id"`
	OverlapError string `json:"overlap_error,omitempty"`
	OrderError   string `json:"order_error,omitempty"`
	Valid        bool   `json:"valid"`
}

type ScheduleServiceInterface interface {
	Preview(ctx context.Context, providerID uuid.UUID, in PlanInput) ([]entity.ProjectedSlot, *errors.AppError)
	Validate(ctx context.Context, providerID uuid.UUID, in PlanInput) ([]AssignmentCheck, *errors.AppError)
	Submit(ctx context.Context, providerID uuid.UUID, in PlanInput) (*entity.Event, []AssignmentCheck, *errors.AppError)
	ListEvents(ctx context.Context, providerID uuid.UUID) ([]entity.Event, *errors.AppError)
	GetEvent(ctx context.Context, providerID, eventID uuid.UUID) (*entity.Event, []entity.EventSchedule, *errors.AppError)
}

type ScheduleService struct {
	repo       repository.ScheduleRepositoryInterface
	templates  templaterepo.TemplateRepositoryInterface
	taskClient *asynq.Client
}

func NewScheduleService(repo repository.ScheduleRepositoryInterface, templates templaterepo.TemplateRepositoryInterface, taskClient *asynq.Client) *ScheduleService {
	return &ScheduleService{repo: repo, templates: templates, taskClient: taskClient}
}

// resolve loads every referenced template (owner-scoped) and converts inputs
// to assignments. Unknown template ids and malformed dates are validation
// failures.
func (s *ScheduleService) resolve(ctx context.Context, providerID uuid.UUID, in PlanInput) ([]entity.EventSchedule, map[string]templateentity.Template, *errors.AppError) {
	if len(in.Assignments) == 0 {
		return nil, nil, errors.NewAppError(errors.ErrInvalidInput, "schedule plan must have at least one assignment", nil)
	}

	templates := make(map[string]templateentity.Template)
	assignments := make([]entity.EventSchedule, 0, len(in.Assignments))
	for _, a := range in.Assignments {
		startDate, err := utils.ParseDate(a.StartDate)
		if err != nil {
			return nil, nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
		}

		key := a.TemplateID.String()
		if _, ok := templates[key]; !ok {
			tmpl, err := s.templates.GetByID(ctx, providerID, a.TemplateID)
			if err != nil {
				logger.Error("ScheduleService:resolve:GetByID", err)
				return nil, nil, errors.NewAppError(errors.ErrInternalServer, "failed to load template", err)
			}
			if tmpl == nil {
				return nil, nil, errors.NewAppError(errors.ErrNotFound, "template "+key+" not found", nil)
			}
			templates[key] = *tmpl
		}

		id := a.ID
		if id == "" {
			id = utils.GenerateID()
		}
		assignments = append(assignments, entity.EventSchedule{
			ID:           id,
			TemplateID:   a.TemplateID,
			TemplateName: templates[key].Name,
			StartDate:    startDate,
			Order:        a.Order,
		})
	}
	return assignments, templates, nil
}

func (s *ScheduleService) Preview(ctx context.Context, providerID uuid.UUID, in PlanInput) ([]entity.ProjectedSlot, *errors.AppError) {
	assignments, templates, appErr := s.resolve(ctx, providerID, in)
	if appErr != nil {
		return nil, appErr
	}
	if !HasValidSchedule(assignments, templates) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "schedule plan has no valid assignment", nil)
	}
	return ProjectAll(assignments, templates), nil
}

func (s *ScheduleService) Validate(ctx context.Context, providerID uuid.UUID, in PlanInput) ([]AssignmentCheck, *errors.AppError) {
	assignments, templates, appErr := s.resolve(ctx, providerID, in)
	if appErr != nil {
		return nil, appErr
	}
	return checkAll(assignments, templates), nil
}

// Submit persists the event with its schedule plan; every assignment must be
// valid. A confirmation notification task is enqueued after commit.
func (s *ScheduleService) Submit(ctx context.Context, providerID uuid.UUID, in PlanInput) (*entity.Event, []AssignmentCheck, *errors.AppError) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, nil, errors.NewAppError(errors.ErrInvalidInput, "event name is required", nil)
	}

	assignments, templates, appErr := s.resolve(ctx, providerID, in)
	if appErr != nil {
		return nil, nil, appErr
	}

	checks := checkAll(assignments, templates)
	for _, c := range checks {
		if !c.Valid {
			return nil, checks, errors.NewAppError(errors.ErrInvalidInput, "schedule plan has invalid assignments", nil)
		}
	}

	event := entity.Event{
		ID:          uuid.New(),
		ProviderID:  providerID,
		Name:        name,
		Description: in.Description,
		Status:      entity.EventStatusPublished,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	for i := range assignments {
		assignments[i].EventID = event.ID
	}

	if err := s.repo.CreateEvent(ctx, &event, assignments); err != nil {
		logger.Error("ScheduleService:Submit:CreateEvent", err)
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "failed to create event", err)
	}

	s.enqueueSubmitted(providerID, event, len(assignments))

	logger.Info("ScheduleService:Submit:Success", "provider_id", providerID, "event_id", event.ID, "assignments", len(assignments))
	return &event, checks, nil
}

func (s *ScheduleService) ListEvents(ctx context.Context, providerID uuid.UUID) ([]entity.Event, *errors.AppError) {
	events, err := s.repo.ListEventsByProvider(ctx, providerID)
	if err != nil {
		logger.Error("ScheduleService:ListEvents", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list events", err)
	}
	return events, nil
}

func (s *ScheduleService) GetEvent(ctx context.Context, providerID, eventID uuid.UUID) (*entity.Event, []entity.EventSchedule, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, providerID, eventID)
	if err != nil {
		logger.Error("ScheduleService:GetEvent:GetEventByID", err)
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "failed to load event", err)
	}
	if event == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	assignments, err := s.repo.ListAssignments(ctx, eventID)
	if err != nil {
		logger.Error("ScheduleService:GetEvent:ListAssignments", err)
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "failed to load schedule plan", err)
	}
	return event, assignments, nil
}

func checkAll(assignments []entity.EventSchedule, templates map[string]templateentity.Template) []AssignmentCheck {
	orderErrs := ValidateOrder(assignments)
	checks := make([]AssignmentCheck, 0, len(assignments))
	for _, a := range assignments {
		check := AssignmentCheck{AssignmentID: a.ID, Valid: true}
		if err := CheckOverlaps(a, assignments, templates); err != nil {
			check.OverlapError = err.Error()
			check.Valid = false
		}
		if msg, ok := orderErrs[a.ID]; ok {
			check.OrderError = msg
			check.Valid = false
		}
		checks = append(checks, check)
	}
	return checks
}

func (s *ScheduleService) enqueueSubmitted(providerID uuid.UUID, event entity.Event, assignments int) {
	if s.taskClient == nil {
		return
	}
	task, err := tasks.NewScheduleSubmittedTask(tasks.ScheduleSubmittedPayload{
		UserID:      providerID.String(),
		EventID:     event.ID.String(),
		EventName:   event.Name,
		Assignments: assignments,
	})
	if err != nil {
		logger.Warn("ScheduleService:enqueueSubmitted:NewTask", "error", err)
		return
	}
	if _, err := s.taskClient.Enqueue(task); err != nil {
		logger.Warn("ScheduleService:enqueueSubmitted:Enqueue", "error", err)
	}
}
