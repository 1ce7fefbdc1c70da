package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/core/domain"
)

func newTestManager(secret string) *JWTManager {
	return NewJWTManager(secret, time.Hour, zerolog.Nop())
}

func TestJWTManager_IssueAndVerify(t *testing.T) {
	m := newTestManager("secret")

	signed, err := m.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected subject user-1, got %q", claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %q", claims.Role)
	}
}

func TestJWTManager_Verify_Expired(t *testing.T) {
	m := newTestManager("secret")

	now := time.Now().UTC()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := m.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTManager_Verify_WrongSecret(t *testing.T) {
	signed, err := newTestManager("secret-a").Issue("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := newTestManager("secret-b").Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestJWTManager_Verify_Tampered(t *testing.T) {
	m := newTestManager("secret")

	signed, err := m.Issue("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	// Flip one byte of the signature.
	tampered := []byte(signed)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	if _, err := m.Verify(string(tampered)); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestJWTManager_Verify_Malformed(t *testing.T) {
	m := newTestManager("secret")

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := m.Verify(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}

func TestJWTManager_Verify_UnexpectedAlg(t *testing.T) {
	m := newTestManager("secret")

	// alg=none must be rejected even with a valid-looking payload.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := m.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestJWTManager_TTLFallback(t *testing.T) {
	m := NewJWTManager("secret", -1, zerolog.Nop())
	if m.ttl != defaultTTL {
		t.Fatalf("expected default ttl, got %v", m.ttl)
	}
}
