// AngelaMos | 2026
// otp.go

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/truyenhub/backend/internal/core"
	"github.com/truyenhub/backend/internal/mailer"
)

// OTPManager owns the one-time-code lifecycle: issue, dispatch, consume.
type OTPManager struct {
	repo       Repository
	dispatcher mailer.Dispatcher
	expire     time.Duration
	now        func() time.Time
}

func NewOTPManager(
	repo Repository,
	dispatcher mailer.Dispatcher,
	expire time.Duration,
) *OTPManager {
	return &OTPManager{
		repo:       repo,
		dispatcher: dispatcher,
		expire:     expire,
		now:        time.Now,
	}
}

// Issue replaces any outstanding codes for the email with a fresh one and
// dispatches it. Replacement bounds the number of valid codes per email to
// exactly one; a crash between delete and insert leaves zero valid codes,
// which a resend recovers from.
func (m *OTPManager) Issue(
	ctx context.Context,
	userID, email string,
	purpose string,
) error {
	code, err := core.GenerateOTPCode()
	if err != nil {
		return fmt.Errorf("issue otp: %w", err)
	}

	if err := m.repo.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("issue otp: %w", err)
	}

	otp := &OTPCode{
		ID:        uuid.New().String(),
		UserID:    userID,
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: m.now().Add(m.expire),
	}

	if err := m.repo.Create(ctx, otp); err != nil {
		return fmt.Errorf("issue otp: %w", err)
	}

	mailPurpose := mailer.PurposeRegistration
	if purpose == PurposePasswordReset {
		mailPurpose = mailer.PurposePasswordReset
	}

	if err := m.dispatcher.SendOTP(ctx, email, code, mailPurpose); err != nil {
		return fmt.Errorf("issue otp: %w", err)
	}

	return nil
}

// PurgeExpired removes codes whose expiry has passed. Consume already
// rejects them, so this only reclaims storage; it is safe to run
// concurrently with issuing and redemption.
func (m *OTPManager) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := m.repo.DeleteExpired(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("purge expired otp: %w", err)
	}
	return n, nil
}

// Consume validates and burns a code. ErrNotFound covers wrong codes and
// already-used codes alike; ErrOTPExpired is only returned for a code that
// would otherwise have matched.
func (m *OTPManager) Consume(
	ctx context.Context,
	email, code string,
) (*OTPCode, error) {
	otp, err := m.repo.FindUnconsumed(ctx, email, code)
	if err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}

	if otp.IsExpired(m.now()) {
		return nil, fmt.Errorf("consume otp: %w", core.ErrOTPExpired)
	}

	if err := m.repo.MarkVerified(ctx, otp.ID); err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}

	otp.Verified = true
	return otp, nil
}
