package ports

import (
	"context"

	"github.com/taskforge/task-api/internal/core/domain"
)

// RegisterInput carries validated registration data.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // defaults to "user" when empty
}

// AuthService implements registration, login, and per-request
// authentication.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Authenticate resolves a bearer token to a live Principal. It verifies
	// the token, re-checks the user record, and rejects deactivated or
	// deleted accounts even while the token is still cryptographically
	// valid.
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
	// SetActive flips the account's active flag (admin operation).
	SetActive(ctx context.Context, userID string, active bool) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}
