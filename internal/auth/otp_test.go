// AngelaMos | 2026
// otp_test.go

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/truyenhub/backend/internal/core"
	"github.com/truyenhub/backend/internal/mailer"
)

type fakeOTPRepo struct {
	byEmail map[string]*OTPCode
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{byEmail: make(map[string]*OTPCode)}
}

func (r *fakeOTPRepo) Create(ctx context.Context, otp *OTPCode) error {
	cp := *otp
	r.byEmail[otp.Email] = &cp
	return nil
}

func (r *fakeOTPRepo) FindUnconsumed(
	ctx context.Context,
	email, code string,
) (*OTPCode, error) {
	otp, ok := r.byEmail[email]
	if !ok || otp.Code != code || otp.Verified {
		return nil, core.ErrNotFound
	}
	cp := *otp
	return &cp, nil
}

func (r *fakeOTPRepo) MarkVerified(ctx context.Context, id string) error {
	for _, otp := range r.byEmail {
		if otp.ID == id && !otp.Verified {
			otp.Verified = true
			return nil
		}
	}
	return core.ErrNotFound
}

func (r *fakeOTPRepo) DeleteByEmail(ctx context.Context, email string) error {
	delete(r.byEmail, email)
	return nil
}

func (r *fakeOTPRepo) DeleteExpired(
	ctx context.Context,
	before time.Time,
) (int64, error) {
	var n int64
	for email, otp := range r.byEmail {
		if otp.ExpiresAt.Before(before) {
			delete(r.byEmail, email)
			n++
		}
	}
	return n, nil
}

type capturingDispatcher struct {
	sent []string
}

func (d *capturingDispatcher) SendOTP(
	ctx context.Context,
	to, code string,
	purpose mailer.Purpose,
) error {
	d.sent = append(d.sent, code)
	return nil
}

func newTestOTPManager(
	repo Repository,
	dispatcher mailer.Dispatcher,
) *OTPManager {
	m := NewOTPManager(repo, dispatcher, 10*time.Minute)
	return m
}

func TestOTPManager_IssueReplacesPrevious(t *testing.T) {
	t.Parallel()

	repo := newFakeOTPRepo()
	dispatcher := &capturingDispatcher{}
	m := newTestOTPManager(repo, dispatcher)
	ctx := context.Background()

	if err := m.Issue(ctx, "u1", "a@b.c", PurposeRegistration); err != nil {
		t.Fatalf("first Issue error: %v", err)
	}
	if err := m.Issue(ctx, "u1", "a@b.c", PurposeRegistration); err != nil {
		t.Fatalf("second Issue error: %v", err)
	}

	if len(dispatcher.sent) != 2 {
		t.Fatalf("expected 2 dispatched codes, got %d", len(dispatcher.sent))
	}

	// Only the latest code is valid.
	first, second := dispatcher.sent[0], dispatcher.sent[1]
	if first != second {
		if _, err := m.Consume(ctx, "a@b.c", first); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("stale code should be NotFound, got %v", err)
		}
	}
	if _, err := m.Consume(ctx, "a@b.c", second); err != nil {
		t.Fatalf("latest code should consume, got %v", err)
	}
}

func TestOTPManager_ConsumeIsSingleUse(t *testing.T) {
	t.Parallel()

	repo := newFakeOTPRepo()
	dispatcher := &capturingDispatcher{}
	m := newTestOTPManager(repo, dispatcher)
	ctx := context.Background()

	if err := m.Issue(ctx, "u1", "a@b.c", PurposeRegistration); err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	code := dispatcher.sent[0]

	otp, err := m.Consume(ctx, "a@b.c", code)
	if err != nil {
		t.Fatalf("Consume error: %v", err)
	}
	if !otp.Verified {
		t.Fatal("consumed code should be marked verified")
	}
	if otp.UserID != "u1" {
		t.Fatalf("unexpected user id %q", otp.UserID)
	}

	if _, err := m.Consume(ctx, "a@b.c", code); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("second consume should be NotFound, got %v", err)
	}
}

func TestOTPManager_ConsumeWrongCode(t *testing.T) {
	t.Parallel()

	repo := newFakeOTPRepo()
	dispatcher := &capturingDispatcher{}
	m := newTestOTPManager(repo, dispatcher)
	ctx := context.Background()

	if err := m.Issue(ctx, "u1", "a@b.c", PurposeRegistration); err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := m.Consume(ctx, "a@b.c", "000000"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("wrong code should be NotFound, got %v", err)
	}
}

func TestOTPManager_ConsumeExpired(t *testing.T) {
	t.Parallel()

	repo := newFakeOTPRepo()
	dispatcher := &capturingDispatcher{}
	m := newTestOTPManager(repo, dispatcher)
	ctx := context.Background()

	if err := m.Issue(ctx, "u1", "a@b.c", PurposeRegistration); err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	code := dispatcher.sent[0]

	// Jump past the expiry window.
	m.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	if _, err := m.Consume(ctx, "a@b.c", code); !errors.Is(err, core.ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
}

func TestOTPManager_PurgeExpired(t *testing.T) {
	t.Parallel()

	repo := newFakeOTPRepo()
	dispatcher := &capturingDispatcher{}
	m := newTestOTPManager(repo, dispatcher)
	ctx := context.Background()

	if err := m.Issue(ctx, "u1", "a@b.c", PurposeRegistration); err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if err := m.Issue(ctx, "u2", "x@y.z", PurposeRegistration); err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Nothing has expired yet.
	n, err := m.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 purged, got %d", n)
	}

	m.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	n, err = m.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 purged, got %d", n)
	}

	code := dispatcher.sent[0]
	if _, err := m.Consume(ctx, "a@b.c", code); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("purged code should be NotFound, got %v", err)
	}
}

func TestOTPCode_IsExpiredBoundary(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	otp := OTPCode{ExpiresAt: at}

	if otp.IsExpired(at.Add(-time.Second)) {
		t.Fatal("code should still be valid before expiry")
	}
	if !otp.IsExpired(at) {
		t.Fatal("code should be expired exactly at expiry")
	}
	if !otp.IsExpired(at.Add(time.Second)) {
		t.Fatal("code should be expired after expiry")
	}
}
