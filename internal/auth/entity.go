// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// OTPCode is a single-use, time-boxed verification code. At most one
// unconsumed row exists per email: issuing a new code deletes all prior
// rows for that address first.
type OTPCode struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Email     string    `db:"email"`
	Code      string    `db:"code"`
	Purpose   string    `db:"purpose"`
	ExpiresAt time.Time `db:"expires_at"`
	Verified  bool      `db:"verified"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	PurposeRegistration  = "registration"
	PurposePasswordReset = "password_reset"
)

func (o *OTPCode) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
