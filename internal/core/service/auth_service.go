package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/api/metrics"
	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

// AuthService implements registration, login, and per-request
// authentication on top of the user repository and token manager.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenManager
	hasher PasswordHasher
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenManager, hasher PasswordHasher, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, hasher: hasher, log: log}
}

// Register creates a new account and returns it with a freshly issued
// token. The role defaults to "user" when empty.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, "", domain.ErrInvalidInput
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, "", domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("password hashing failed")
		return nil, "", domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	metrics.RegistrationsTotal.WithLabelValues(created.Role).Inc()

	return created, token, nil
}

// Login verifies credentials and issues a token. Unknown email, wrong
// password, and deactivated account all collapse to ErrInvalidCredentials
// so responses cannot be used for account enumeration.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "denied").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.IsActive || !s.hasher.Verify(password, user.PasswordHash) {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "denied").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
	return token, user, nil
}

// Authenticate resolves a bearer token to a live Principal.
//
// The token claim is trusted only for the subject id; the role and active
// flag are re-read from the store on every request so deleted or
// deactivated accounts lose access immediately, and role changes take
// effect without token rotation.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	if token == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("token", "denied").Inc()
		return nil, domain.ErrMissingCredentials
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("token", "denied").Inc()
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("token", "denied").Inc()
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		metrics.AuthAttemptsTotal.WithLabelValues("token", "denied").Inc()
		return nil, domain.ErrInvalidToken
	}

	metrics.AuthAttemptsTotal.WithLabelValues("token", "ok").Inc()
	p := domain.PrincipalFromUser(user)
	return &p, nil
}

// SetActive flips the account's active flag. Route-level RBAC restricts
// this to admins.
func (s *AuthService) SetActive(ctx context.Context, userID string, active bool) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsActive == active {
		return user, nil
	}

	user.IsActive = active
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Bool("active", active).Msg("user active flag changed")
	return user, nil
}

// GetUser returns a user record by id.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
