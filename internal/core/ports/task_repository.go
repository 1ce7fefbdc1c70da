package ports

import (
	"context"

	"github.com/taskforge/task-api/internal/core/domain"
)

// ListTasksFilter carries query parameters for listing tasks. OwnerID is
// enforced by the service layer: empty means no owner filter (admin).
type ListTasksFilter struct {
	OwnerID  string
	Status   string
	Priority string
	Page     int // 1-based
	Limit    int // capped at 100 by the service
}

// StatusCount is one bucket of the stats aggregation.
type StatusCount struct {
	Key   string
	Count int64
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns a page of tasks matching filter, newest first, plus the
	// total count.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	// Stats groups all tasks by status and by priority.
	Stats(ctx context.Context) (byStatus, byPriority []StatusCount, total int64, err error)
}

// ActivityRepository persists the task activity trail.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.TaskActivity) error
	FindByTaskID(ctx context.Context, taskID string) ([]*domain.TaskActivity, error)
}
