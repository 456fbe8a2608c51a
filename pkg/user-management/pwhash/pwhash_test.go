package pwhash

import (
	"strings"
	"testing"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash format: %s", hash)
	}

	if err := ComparePasswordWithHash(hash, "correct horse battery staple"); err != nil {
		t.Errorf("expected password to match, got %v", err)
	}

	if err := ComparePasswordWithHash(hash, "wrong password"); err != ErrWrongPassword {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	h1, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestComparePasswordWithHashRejectsMalformed(t *testing.T) {
	if err := ComparePasswordWithHash("not-a-hash", "pw"); err == nil {
		t.Error("expected error for malformed hash")
	}
}
