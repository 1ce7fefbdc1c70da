package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

// JWTManager issues and verifies HS256-signed tokens. The secret is passed
// at construction and never read from ambient state, so the manager can be
// swapped or re-keyed in tests.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
}

const defaultTTL = 6 * time.Hour

// NewJWTManager constructs a manager with the given secret and token TTL.
// A non-positive TTL falls back to a default of a few hours.
func NewJWTManager(secret string, ttl time.Duration, log zerolog.Logger) *JWTManager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, log: log}
}

var _ ports.TokenManager = (*JWTManager)(nil)

// Claims is the JWT payload. The subject carries the user id; the role is
// embedded for observability only — the auth service re-derives it from the
// live user record.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue creates a signed token for the given user.
func (m *JWTManager) Issue(userID, role string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify parses and validates a token. All failure modes — malformed
// structure, wrong signature, expiry — collapse to domain.ErrInvalidToken
// at the boundary; the specific reason is only logged at debug level.
func (m *JWTManager) Verify(tokenString string) (*ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		m.log.Debug().Str("reason", rejectReason(err)).Msg("token rejected")
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{UserID: claims.Subject, Role: claims.Role}, nil
}

// rejectReason classifies a verification failure for logging. Callers never
// see this distinction.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad_signature"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	default:
		return "invalid"
	}
}
