// AngelaMos | 2026
// mailer.go

package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/truyenhub/backend/internal/config"
)

// Purpose selects the subject/body template for an OTP mail.
type Purpose string

const (
	PurposeRegistration  Purpose = "registration"
	PurposePasswordReset Purpose = "password_reset"
)

// Dispatcher delivers one-time codes to users. Constructed once at startup
// and injected into the auth service; nothing reads mail config at module
// scope.
type Dispatcher interface {
	SendOTP(ctx context.Context, to string, code string, purpose Purpose) error
}

type SMTPDispatcher struct {
	cfg config.SMTPConfig
}

func NewSMTPDispatcher(cfg config.SMTPConfig) *SMTPDispatcher {
	return &SMTPDispatcher{cfg: cfg}
}

func (d *SMTPDispatcher) SendOTP(
	ctx context.Context,
	to string,
	code string,
	purpose Purpose,
) error {
	subject, body := renderTemplate(code, purpose)

	if err := send(ctx, d.cfg, to, subject, body); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}

	return nil
}

func renderTemplate(code string, purpose Purpose) (string, string) {
	switch purpose {
	case PurposePasswordReset:
		return "TruyenHub password reset code",
			"Your password reset code is: " + code + "\n" +
				"It expires in 10 minutes. If you did not request a reset, ignore this mail."
	default:
		return "Welcome to TruyenHub - verify your account",
			"Your verification code is: " + code + "\n" +
				"Enter it in the app to activate your account. It expires in 10 minutes."
	}
}

// LogDispatcher writes codes to the log instead of sending mail. Used in
// development when no SMTP relay is configured.
type LogDispatcher struct {
	Logger *slog.Logger
}

func (d *LogDispatcher) SendOTP(
	ctx context.Context,
	to string,
	code string,
	purpose Purpose,
) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("otp dispatch (log only)",
		"to", to,
		"code", code,
		"purpose", string(purpose),
	)
	return nil
}
