package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/api/metrics"
	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ActivityRecorder receives activity records for asynchronous persistence.
// Recording is best-effort and must not block the mutation path.
type ActivityRecorder interface {
	Record(a domain.TaskActivity)
}

// TaskService implements task CRUD with ownership-based access control.
type TaskService struct {
	repo     ports.TaskRepository
	activity ports.ActivityRepository
	recorder ActivityRecorder
	log      zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, activity ports.ActivityRepository, recorder ActivityRecorder, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, activity: activity, recorder: recorder, log: log}
}

// Create inserts a new task owned by the principal.
func (s *TaskService) Create(ctx context.Context, p domain.Principal, input ports.CreateTaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, domain.ErrInvalidInput
	}

	status := domain.TaskStatus(input.Status)
	if input.Status == "" {
		status = domain.StatusPending
	}
	priority := domain.TaskPriority(input.Priority)
	if input.Priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		Owner:       domain.Owner{ID: p.ID, Email: p.Email},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.log.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()
	s.record(task.ID, domain.ActivityCreated, p.ID, "")
	return task, nil
}

// Get retrieves a single task, enforcing the ownership policy.
func (s *TaskService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(task.Owner.ID) {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

// List returns a page of tasks. Admins see every task; users only their
// own.
func (s *TaskService) List(ctx context.Context, p domain.Principal, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListTasksFilter{
		Status:   input.Status,
		Priority: input.Priority,
		Page:     page,
		Limit:    limit,
	}
	if !p.IsAdmin() {
		filter.OwnerID = p.ID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListTasksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Update applies a partial update, enforcing the ownership policy.
func (s *TaskService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(task.Owner.ID) {
		return nil, domain.ErrForbidden
	}

	action := domain.ActivityUpdated
	detail := ""
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil && domain.TaskStatus(*input.Status) != task.Status {
		action = domain.ActivityStatusChanged
		detail = fmt.Sprintf("%s -> %s", task.Status, *input.Status)
		task.Status = domain.TaskStatus(*input.Status)
	}
	if input.Priority != nil {
		task.Priority = domain.TaskPriority(*input.Priority)
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		s.log.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}

	s.record(task.ID, action, p.ID, detail)
	return task, nil
}

// Delete removes a task, enforcing the ownership policy.
func (s *TaskService) Delete(ctx context.Context, p domain.Principal, id string) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.CanAccess(task.Owner.ID) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(task.ID, domain.ActivityDeleted, p.ID, "")
	return nil
}

// Stats aggregates all tasks by status and priority. Route-level RBAC
// restricts this to admins.
func (s *TaskService) Stats(ctx context.Context) (*ports.TaskStats, error) {
	byStatus, byPriority, total, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.TaskStats{Total: total, ByStatus: byStatus, ByPriority: byPriority}, nil
}

// Activity returns the task's activity trail under the same ownership
// policy as the task itself.
func (s *TaskService) Activity(ctx context.Context, p domain.Principal, taskID string) ([]*domain.TaskActivity, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(task.Owner.ID) {
		return nil, domain.ErrForbidden
	}
	return s.activity.FindByTaskID(ctx, taskID)
}

func (s *TaskService) record(taskID, action, actorID, detail string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(domain.TaskActivity{
		TaskID:    taskID,
		Action:    action,
		ActorID:   actorID,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
