// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/truyenhub/backend/internal/core"
)

type fakeUserProvider struct {
	byEmail    map[string]*UserInfo
	nextID     int
	pwUpdates  map[string]string
	activated  []string
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{
		byEmail:   make(map[string]*UserInfo),
		pwUpdates: make(map[string]string),
	}
}

// The real user store lowercases on create and lookup; the fake does
// the same so case handling above it is exercised honestly.
func (p *fakeUserProvider) GetByEmail(
	ctx context.Context,
	email string,
) (*UserInfo, error) {
	user, ok := p.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (p *fakeUserProvider) GetByUsername(
	ctx context.Context,
	username string,
) (*UserInfo, error) {
	for _, user := range p.byEmail {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (p *fakeUserProvider) GetByID(
	ctx context.Context,
	id string,
) (*UserInfo, error) {
	for _, user := range p.byEmail {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (p *fakeUserProvider) Create(
	ctx context.Context,
	username, email, passwordHash string,
	active bool,
) (*UserInfo, error) {
	email = strings.ToLower(email)
	if _, ok := p.byEmail[email]; ok {
		return nil, core.ErrDuplicateKey
	}
	p.nextID++
	user := &UserInfo{
		ID:           fmt.Sprintf("user-%d", p.nextID),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "user",
		IsActive:     active,
		CreatedAt:    time.Now(),
	}
	p.byEmail[email] = user
	cp := *user
	return &cp, nil
}

func (p *fakeUserProvider) Activate(ctx context.Context, userID string) error {
	for _, user := range p.byEmail {
		if user.ID == userID {
			user.IsActive = true
			p.activated = append(p.activated, userID)
			return nil
		}
	}
	return core.ErrNotFound
}

func (p *fakeUserProvider) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	for _, user := range p.byEmail {
		if user.ID == userID {
			user.PasswordHash = passwordHash
			p.pwUpdates[userID] = passwordHash
			return nil
		}
	}
	return core.ErrNotFound
}

func newTestService(
	t *testing.T,
) (*Service, *fakeUserProvider, *capturingDispatcher) {
	t.Helper()

	provider := newFakeUserProvider()
	dispatcher := &capturingDispatcher{}
	otp := NewOTPManager(newFakeOTPRepo(), dispatcher, 10*time.Minute)
	jwt := newTestJWTManager(t, 15*time.Minute)
	return NewService(jwt, otp, provider), provider, dispatcher
}

func TestService_RegisterVerifyLogin(t *testing.T) {
	t.Parallel()

	svc, provider, dispatcher := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "Sup3rSecret!",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.IsActive {
		t.Fatal("fresh registration must start inactive")
	}
	if len(dispatcher.sent) != 1 {
		t.Fatalf("expected 1 dispatched code, got %d", len(dispatcher.sent))
	}

	// Login before verification is rejected as blocked.
	_, err = svc.Login(ctx, LoginRequest{
		Email:    "reader@example.com",
		Password: "Sup3rSecret!",
	})
	if !errors.Is(err, ErrAccountBlocked) {
		t.Fatalf("pre-verification login: want ErrAccountBlocked, got %v", err)
	}

	if err := svc.VerifyOTP(ctx, "reader@example.com", dispatcher.sent[0]); err != nil {
		t.Fatalf("VerifyOTP error: %v", err)
	}
	if len(provider.activated) != 1 || provider.activated[0] != user.ID {
		t.Fatalf("expected activation of %s, got %v", user.ID, provider.activated)
	}

	resp, err := svc.Login(ctx, LoginRequest{
		Email:    "reader@example.com",
		Password: "Sup3rSecret!",
	})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if resp.Token.AccessToken == "" {
		t.Fatal("login returned empty access token")
	}
	if resp.Token.TokenType != "Bearer" {
		t.Fatalf("token type = %q, want Bearer", resp.Token.TokenType)
	}
	if resp.User.Email != "reader@example.com" {
		t.Fatalf("unexpected user in response: %+v", resp.User)
	}
}

func TestService_RegisterInactiveEmailReissuesCode(t *testing.T) {
	t.Parallel()

	svc, _, dispatcher := newTestService(t)
	ctx := context.Background()

	req := RegisterRequest{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "Sup3rSecret!",
	}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	// Abandoned signup: same email, still unverified.
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("re-register of unverified email should reissue, got %v", err)
	}
	if len(dispatcher.sent) != 2 {
		t.Fatalf("expected 2 dispatched codes, got %d", len(dispatcher.sent))
	}

	// Only the most recent code works.
	if err := svc.VerifyOTP(ctx, req.Email, dispatcher.sent[1]); err != nil {
		t.Fatalf("VerifyOTP with latest code: %v", err)
	}
}

func TestService_RegisterActiveEmailRejected(t *testing.T) {
	t.Parallel()

	svc, _, dispatcher := newTestService(t)
	ctx := context.Background()

	req := RegisterRequest{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "Sup3rSecret!",
	}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.VerifyOTP(ctx, req.Email, dispatcher.sent[0]); err != nil {
		t.Fatalf("VerifyOTP error: %v", err)
	}

	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists, got %v", err)
	}
}

func TestService_RegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{
		Username: "reader",
		Email:    "first@example.com",
		Password: "Sup3rSecret!",
	}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "reader",
		Email:    "second@example.com",
		Password: "Sup3rSecret!",
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("want ErrUsernameExists, got %v", err)
	}
}

func TestService_LoginInvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, _, dispatcher := newTestService(t)
	ctx := context.Background()

	// Unknown email and wrong password must be indistinguishable.
	_, err := svc.Login(ctx, LoginRequest{
		Email:    "nobody@example.com",
		Password: "Sup3rSecret!",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: want ErrInvalidCredentials, got %v", err)
	}

	if _, err := svc.Register(ctx, RegisterRequest{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "Sup3rSecret!",
	}); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.VerifyOTP(ctx, "reader@example.com", dispatcher.sent[0]); err != nil {
		t.Fatalf("VerifyOTP error: %v", err)
	}

	_, err = svc.Login(ctx, LoginRequest{
		Email:    "reader@example.com",
		Password: "WrongPassword1!",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
}

func TestService_ForgotAndResetPassword(t *testing.T) {
	t.Parallel()

	svc, provider, dispatcher := newTestService(t)
	ctx := context.Background()

	// Unknown email succeeds silently.
	if err := svc.ForgotPassword(ctx, "nobody@example.com"); err != nil {
		t.Fatalf("ForgotPassword for unknown email: %v", err)
	}
	if len(dispatcher.sent) != 0 {
		t.Fatal("no code should be dispatched for an unknown email")
	}

	user, err := svc.Register(ctx, RegisterRequest{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "Sup3rSecret!",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.VerifyOTP(ctx, "reader@example.com", dispatcher.sent[0]); err != nil {
		t.Fatalf("VerifyOTP error: %v", err)
	}

	if err := svc.ForgotPassword(ctx, "reader@example.com"); err != nil {
		t.Fatalf("ForgotPassword error: %v", err)
	}

	resetCode := dispatcher.sent[len(dispatcher.sent)-1]
	if err := svc.ResetPassword(ctx, ResetPasswordRequest{
		Email:       "reader@example.com",
		Code:        resetCode,
		NewPassword: "Bran3dNewPass!",
	}); err != nil {
		t.Fatalf("ResetPassword error: %v", err)
	}
	if _, ok := provider.pwUpdates[user.ID]; !ok {
		t.Fatal("password hash was not updated")
	}

	if _, err := svc.Login(ctx, LoginRequest{
		Email:    "reader@example.com",
		Password: "Bran3dNewPass!",
	}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{
		Email:    "reader@example.com",
		Password: "Sup3rSecret!",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
}

func TestService_MixedCaseEmailRedeemsCode(t *testing.T) {
	t.Parallel()

	svc, _, dispatcher := newTestService(t)
	ctx := context.Background()

	// Mobile keyboards auto-capitalize; the user types the same
	// mixed-case address at every step.
	const typed = "Reader@Example.com"

	if _, err := svc.Register(ctx, RegisterRequest{
		Username: "reader",
		Email:    typed,
		Password: "Sup3rSecret!",
	}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if err := svc.VerifyOTP(ctx, typed, dispatcher.sent[0]); err != nil {
		t.Fatalf("VerifyOTP with the email as typed: %v", err)
	}

	if _, err := svc.Login(ctx, LoginRequest{
		Email:    typed,
		Password: "Sup3rSecret!",
	}); err != nil {
		t.Fatalf("Login with the email as typed: %v", err)
	}

	if err := svc.ForgotPassword(ctx, typed); err != nil {
		t.Fatalf("ForgotPassword error: %v", err)
	}
	resetCode := dispatcher.sent[len(dispatcher.sent)-1]

	if err := svc.ResetPassword(ctx, ResetPasswordRequest{
		Email:       typed,
		Code:        resetCode,
		NewPassword: "Bran3dNewPass!",
	}); err != nil {
		t.Fatalf("ResetPassword with the email as typed: %v", err)
	}
}

func TestService_ChangePassword(t *testing.T) {
	t.Parallel()

	svc, _, dispatcher := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "Sup3rSecret!",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.VerifyOTP(ctx, "reader@example.com", dispatcher.sent[0]); err != nil {
		t.Fatalf("VerifyOTP error: %v", err)
	}

	err = svc.ChangePassword(ctx, user.ID, "WrongCurrent1!", "Bran3dNewPass!")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong current password: want ErrInvalidCredentials, got %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "Sup3rSecret!", "Bran3dNewPass!"); err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{
		Email:    "reader@example.com",
		Password: "Bran3dNewPass!",
	}); err != nil {
		t.Fatalf("login with changed password: %v", err)
	}
}
