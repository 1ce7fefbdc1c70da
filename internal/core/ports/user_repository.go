package ports

import (
	"context"

	"github.com/taskforge/task-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Email lookups are
// case-insensitive; Create fails with domain.ErrUserExists when the email is
// already taken.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
}
