// AngelaMos | 2026
// security_test.go

package core

import (
	"strconv"
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Sup3r$ecret")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	ok, err := VerifyPassword("Sup3r$ecret", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatal("correct password rejected")
	}

	ok, err = VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if ok {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
}

func TestVerifyPasswordTimingSafe_NilHash(t *testing.T) {
	t.Parallel()

	valid, rehash, err := VerifyPasswordTimingSafe("anything", nil)
	if err != nil {
		t.Fatalf("VerifyPasswordTimingSafe error: %v", err)
	}
	if valid {
		t.Fatal("nil hash must never verify")
	}
	if rehash != "" {
		t.Fatalf("nil hash must not suggest a rehash, got %q", rehash)
	}
}

func TestGenerateOTPCode(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 200 {
		code, err := GenerateOTPCode()
		if err != nil {
			t.Fatalf("GenerateOTPCode error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
		seen[code] = true
	}

	// 200 draws from a 900k space should essentially never all collide.
	if len(seen) < 2 {
		t.Fatal("codes do not vary")
	}
}
