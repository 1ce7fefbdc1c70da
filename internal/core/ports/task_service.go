package ports

import (
	"context"
	"time"

	"github.com/taskforge/task-api/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task. The owner is
// always the authenticated principal.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string // defaults to "pending" when empty
	Priority    string // defaults to "medium" when empty
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial update. Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

// ListTasksInput carries parameters for the list endpoint.
type ListTasksInput struct {
	Status   string
	Priority string
	Page     int
	Limit    int
}

// ListTasksResult is returned by List.
type ListTasksResult struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TaskStats is the admin-only aggregate view.
type TaskStats struct {
	Total      int64
	ByStatus   []StatusCount
	ByPriority []StatusCount
}

// TaskService defines use-case operations for tasks. Every method takes the
// authenticated principal and enforces the ownership policy: a user acts
// only on own tasks, an admin on any.
type TaskService interface {
	Create(ctx context.Context, p domain.Principal, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.Task, error)
	List(ctx context.Context, p domain.Principal, input ListTasksInput) (*ListTasksResult, error)
	Update(ctx context.Context, p domain.Principal, id string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
	Stats(ctx context.Context) (*TaskStats, error)
	Activity(ctx context.Context, p domain.Principal, taskID string) ([]*domain.TaskActivity, error)
}
