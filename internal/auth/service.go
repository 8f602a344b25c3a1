// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/truyenhub/backend/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account blocked")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
)

type UserInfo struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	AvatarURL    string
	Bio          string
	IsActive     bool
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByUsername(ctx context.Context, username string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		username, email, passwordHash string,
		active bool,
	) (*UserInfo, error)
	Activate(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type Service struct {
	jwt          *JWTManager
	otp          *OTPManager
	userProvider UserProvider
}

func NewService(
	jwt *JWTManager,
	otp *OTPManager,
	userProvider UserProvider,
) *Service {
	return &Service{
		jwt:          jwt,
		otp:          otp,
		userProvider: userProvider,
	}
}

// Register creates an inactive account and mails a verification code.
// Re-registering an email that exists but was never verified reissues the
// code instead of failing, so an abandoned signup can be completed later.
// The unique indexes on username/email are the real uniqueness guarantee;
// the lookups here only produce friendlier errors.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*UserInfo, error) {
	existing, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if existing != nil {
		if existing.IsActive {
			return nil, ErrEmailExists
		}
		if otpErr := s.otp.Issue(ctx, existing.ID, existing.Email, PurposeRegistration); otpErr != nil {
			return nil, fmt.Errorf("reissue otp: %w", otpErr)
		}
		return existing, nil
	}

	if _, err := s.userProvider.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(
		ctx,
		req.Username,
		req.Email,
		passwordHash,
		false,
	)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			// Lost a create race; the pre-checks saw neither value, so
			// report whichever column the store rejected.
			if _, unameErr := s.userProvider.GetByUsername(ctx, req.Username); unameErr == nil {
				return nil, ErrUsernameExists
			}
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.otp.Issue(ctx, user.ID, user.Email, PurposeRegistration); err != nil {
		return nil, fmt.Errorf("issue otp: %w", err)
	}

	return user, nil
}

// VerifyOTP activates the account a registration code belongs to. The
// email is lowercased to match the address the code was issued against:
// the user store normalizes on create, so a mixed-case submission must
// still redeem.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	otp, err := s.otp.Consume(ctx, strings.ToLower(email), code)
	if err != nil {
		return err
	}

	if err := s.userProvider.Activate(ctx, otp.UserID); err != nil {
		return fmt.Errorf("activate user: %w", err)
	}

	return nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	// Blocked accounts are rejected after the credential check so the 403
	// never leaks whether the password was right for some other account.
	if !user.IsActive {
		return nil, ErrAccountBlocked
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.userProvider.UpdatePassword(ctx, user.ID, newHash)
	}

	accessToken, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	ttl := s.jwt.TokenTTL()

	return &LoginResponse{
		User: toUserResponse(user),
		Token: TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int(ttl / time.Second),
			ExpiresAt:   time.Now().Add(ttl),
		},
	}, nil
}

// ForgotPassword mails a reset code. Unknown emails succeed silently so
// the endpoint cannot be used to enumerate accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	if err := s.otp.Issue(ctx, user.ID, user.Email, PurposePasswordReset); err != nil {
		return fmt.Errorf("issue reset otp: %w", err)
	}

	return nil
}

func (s *Service) ResetPassword(
	ctx context.Context,
	req ResetPasswordRequest,
) error {
	otp, err := s.otp.Consume(ctx, strings.ToLower(req.Email), req.Code)
	if err != nil {
		return err
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.UpdatePassword(ctx, otp.UserID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID, currentPassword, newPassword string,
) error {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	valid, _, err := core.VerifyPasswordWithRehash(
		currentPassword,
		user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}
