package service

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "secret1" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !h.Verify("secret1", hash) {
		t.Fatalf("expected verify to succeed for matching password")
	}
	if h.Verify("secret2", hash) {
		t.Fatalf("expected verify to fail for wrong password")
	}
}

func TestPasswordHasher_SaltedPerCall(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	h1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	h2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, stored := range []string{"", "not-a-bcrypt-hash", "$2a$banana"} {
		if h.Verify("anything", stored) {
			t.Fatalf("expected verify to fail for malformed hash %q", stored)
		}
	}
}

func TestPasswordHasher_CostFallback(t *testing.T) {
	h := NewPasswordHasher(99)

	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	// bcrypt encodes the cost in the hash prefix: $2a$<cost>$...
	if !strings.HasPrefix(hash, "$2a$10$") {
		t.Fatalf("expected default cost in hash, got %q", hash)
	}
}
