// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/truyenhub/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, code *OTPCode) error
	// FindUnconsumed matches email+code against rows not yet verified.
	// Wrong codes and already-consumed codes are both ErrNotFound: the
	// caller must not be able to tell them apart.
	FindUnconsumed(ctx context.Context, email, code string) (*OTPCode, error)
	MarkVerified(ctx context.Context, id string) error
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, code *OTPCode) error {
	query := `
		INSERT INTO otp_codes (id, user_id, email, code, purpose, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &code.CreatedAt, query,
		code.ID,
		code.UserID,
		code.Email,
		code.Code,
		code.Purpose,
		code.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create otp code: %w", err)
	}

	return nil
}

func (r *repository) FindUnconsumed(
	ctx context.Context,
	email, code string,
) (*OTPCode, error) {
	query := `
		SELECT id, user_id, email, code, purpose, expires_at, verified, created_at
		FROM otp_codes
		WHERE email = $1 AND code = $2 AND verified = false`

	var otp OTPCode
	err := r.db.GetContext(ctx, &otp, query, email, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find otp code: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find otp code: %w", err)
	}

	return &otp, nil
}

func (r *repository) MarkVerified(ctx context.Context, id string) error {
	query := `
		UPDATE otp_codes
		SET verified = true
		WHERE id = $1 AND verified = false`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark otp verified: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark otp verified: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("mark otp verified: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM otp_codes WHERE email = $1`

	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("delete otp codes: %w", err)
	}

	return nil
}

func (r *repository) DeleteExpired(
	ctx context.Context,
	before time.Time,
) (int64, error) {
	query := `DELETE FROM otp_codes WHERE expires_at < $1`

	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired otp codes: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired otp codes: %w", err)
	}

	return rows, nil
}
