// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/truyenhub/backend/internal/config"
	"github.com/truyenhub/backend/internal/core"
)

func newTestJWTManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	if err := GenerateKeyPair(privatePath, publicPath); err != nil {
		t.Fatalf("GenerateKeyPair error: %v", err)
	}

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		AccessTokenExpire: expire,
		Issuer:            "truyenhub-test",
		Audience:          "truyenhub-api",
	})
	if err != nil {
		t.Fatalf("NewJWTManager error: %v", err)
	}
	return manager
}

func TestJWTManager_RoundTrip(t *testing.T) {
	t.Parallel()

	manager := newTestJWTManager(t, 15*time.Minute)

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "user-123",
		Email:  "reader@example.com",
		Role:   "admin",
	})
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}

	claims, err := manager.VerifyAccessToken(context.Background(), signed)
	if err != nil {
		t.Fatalf("VerifyAccessToken error: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want user-123", claims.UserID)
	}
	if claims.Email != "reader@example.com" {
		t.Errorf("Email = %q, want reader@example.com", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	t.Parallel()

	manager := newTestJWTManager(t, -time.Minute)

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "user-123",
		Email:  "reader@example.com",
		Role:   "user",
	})
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}

	_, err = manager.VerifyAccessToken(context.Background(), signed)
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTManager_GarbageToken(t *testing.T) {
	t.Parallel()

	manager := newTestJWTManager(t, 15*time.Minute)

	_, err := manager.VerifyAccessToken(
		context.Background(),
		"not-a-token-at-all",
	)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTManager_RejectsTokenFromOtherKey(t *testing.T) {
	t.Parallel()

	signer := newTestJWTManager(t, 15*time.Minute)
	verifier := newTestJWTManager(t, 15*time.Minute)

	signed, err := signer.CreateAccessToken(AccessTokenClaims{
		UserID: "user-123",
		Email:  "reader@example.com",
		Role:   "user",
	})
	if err != nil {
		t.Fatalf("CreateAccessToken error: %v", err)
	}

	if _, err := verifier.VerifyAccessToken(context.Background(), signed); !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for foreign signature, got %v", err)
	}
}

func TestJWTManager_TokenTTL(t *testing.T) {
	t.Parallel()

	manager := newTestJWTManager(t, 42*time.Minute)
	if got := manager.TokenTTL(); got != 42*time.Minute {
		t.Fatalf("TokenTTL = %v, want 42m", got)
	}
}

func TestJWTManager_JWKSHandler(t *testing.T) {
	t.Parallel()

	manager := newTestJWTManager(t, 15*time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil)
	rec := httptest.NewRecorder()
	manager.GetJWKSHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("empty JWKS body")
	}
}
