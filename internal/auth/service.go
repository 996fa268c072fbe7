package auth

import (
	"context"
	"crypto/hmac"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avencillado/blognest/internal/config"
	"github.com/avencillado/blognest/internal/pkg/security"
	"github.com/avencillado/blognest/internal/platform/email"
	"github.com/avencillado/blognest/internal/platform/hash"
	"github.com/avencillado/blognest/internal/platform/jwt"
	"github.com/avencillado/blognest/internal/user"
)

var _ AuthService = (*Service)(nil)

var (
	ErrUserExists         = errors.New("auth service: user already exists")
	ErrUserNotVerified    = errors.New("auth service: email not verified")
	ErrAlreadyVerified    = errors.New("auth service: email already verified")
	ErrInvalidCredentials = errors.New("auth service: invalid credentials")
	ErrCodeMismatch       = errors.New("auth service: code mismatch")
	ErrCodeExpired        = errors.New("auth service: code expired")
)

// Repository persists credential lifecycle transitions. Each consuming
// transition is guarded by the stored code signature so concurrent consumers
// race to first-valid-wins; the loser gets ErrCodeMismatch.
type Repository interface {
	SetVerifyCode(ctx context.Context, userID, codeHash string, expiresAt time.Time) error
	Verify(ctx context.Context, userID, codeHash string) error
	SetResetCode(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, email, codeHash, passwordHash string) error
	ChangePassword(ctx context.Context, userID, passwordHash string) error
}

type Providers struct {
	Hasher     hash.Hasher
	CodeSigner hash.Signer
	Signer     jwt.Signer
	Mailer     email.Mailer
}

type Service struct {
	repo       Repository
	userSvc    user.Service
	hasher     hash.Hasher
	codeSigner hash.Signer
	signer     jwt.Signer
	mailer     email.Mailer
	cfg        *config.Config
	now        func() time.Time
}

func NewService(repo Repository, userSvc user.Service, providers *Providers, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		userSvc:    userSvc,
		hasher:     providers.Hasher,
		codeSigner: providers.CodeSigner,
		signer:     providers.Signer,
		mailer:     providers.Mailer,
		cfg:        cfg,
		now:        time.Now,
	}
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

func (p RegisterParams) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", maskChar), slog.String("password", maskChar))
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (user.User, error) {
	u := user.User{}

	existing, err := s.userSvc.FindUserByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return u, fmt.Errorf("find user by email: %w", err)
	}

	if existing != nil {
		return u, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return u, fmt.Errorf("hash password: %w", err)
	}

	newUser, err := s.userSvc.CreateUser(ctx, user.CreateUserParams{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		// two racing registrations can both pass the lookup
		if errors.Is(err, user.ErrDuplicateEmail) {
			return u, ErrUserExists
		}
		return u, fmt.Errorf("create user: %w", err)
	}

	return newUser, nil
}

type LoginParams struct {
	Email    string
	Password string
}

func (p LoginParams) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", maskChar), slog.String("password", maskChar))
}

func (s *Service) Login(ctx context.Context, params LoginParams) (string, *user.User, error) {
	u, err := s.userSvc.FindUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user by email: %w", err)
	}

	ok, err := s.hasher.Verify(params.Password, u.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("verify password: %w", err)
	}

	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	if !u.Verified {
		return "", nil, ErrUserNotVerified
	}

	token, err := s.signer.Sign(u.ID, []string{s.cfg.JWT.Issuer}, s.cfg.JWT.TTL.Duration)
	if err != nil {
		return "", nil, fmt.Errorf("sign token for user %s: %w", u.ID, err)
	}

	return token, u, nil
}

// SendVerifyCode issues a fresh verification code, overwriting any pending
// one, and mails it. A failed delivery is returned to the caller; the pending
// entry stays in place so a retry simply overwrites it.
func (s *Service) SendVerifyCode(ctx context.Context, userID string) (time.Time, error) {
	u, err := s.userSvc.FindUser(ctx, userID)
	if err != nil {
		return time.Time{}, fmt.Errorf("find user: %w", err)
	}

	if u.Verified {
		return time.Time{}, ErrAlreadyVerified
	}

	code, err := security.GenerateCode()
	if err != nil {
		return time.Time{}, fmt.Errorf("generate verification code: %w", err)
	}

	expiresAt := s.now().Add(s.cfg.Code.TTL.Duration)
	if err := s.repo.SetVerifyCode(ctx, u.ID, s.codeSigner.Sign(code), expiresAt); err != nil {
		return time.Time{}, fmt.Errorf("store verification code: %w", err)
	}

	if err := s.sendCodeEmail(u.Email, "Verify your email", "verification", code); err != nil {
		return time.Time{}, err
	}

	return expiresAt, nil
}

// ConfirmVerifyCode consumes a pending verification code. Expiry wins over a
// matching code; a consumed or overwritten code fails with ErrCodeMismatch.
func (s *Service) ConfirmVerifyCode(ctx context.Context, userID, code string) error {
	u, err := s.userSvc.FindUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	if u.Verified {
		return ErrAlreadyVerified
	}

	codeHash, err := s.checkCode(code, u.VerifyCodeHash, u.VerifyExpiresAt)
	if err != nil {
		return err
	}

	if err := s.repo.Verify(ctx, u.ID, codeHash); err != nil {
		return fmt.Errorf("mark user %s verified: %w", u.ID, err)
	}

	return nil
}

// SendResetCode issues a password-reset code for the account with the given
// email. An unknown email is not an error; the caller responds identically
// either way so account existence does not leak.
func (s *Service) SendResetCode(ctx context.Context, emailAddr string) error {
	u, err := s.userSvc.FindUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find user by email: %w", err)
	}

	code, err := security.GenerateCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	expiresAt := s.now().Add(s.cfg.Code.TTL.Duration)
	if err := s.repo.SetResetCode(ctx, u.Email, s.codeSigner.Sign(code), expiresAt); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	return s.sendCodeEmail(u.Email, "Reset your password", "reset_password", code)
}

type ResetPasswordParams struct {
	Email       string
	Code        string
	NewPassword string
}

func (p ResetPasswordParams) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", maskChar), slog.String("code", maskChar))
}

// ResetPassword consumes a pending reset code and commits the new password in
// one step.
func (s *Service) ResetPassword(ctx context.Context, params ResetPasswordParams) error {
	u, err := s.userSvc.FindUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrCodeMismatch
		}
		return fmt.Errorf("find user by email: %w", err)
	}

	codeHash, err := s.checkCode(params.Code, u.ResetCodeHash, u.ResetExpiresAt)
	if err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(params.NewPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	if err := s.repo.ResetPassword(ctx, u.Email, codeHash, passwordHash); err != nil {
		return fmt.Errorf("reset password for user %s: %w", u.ID, err)
	}

	return nil
}

type ChangePasswordParams struct {
	UserID      string
	OldPassword string
	NewPassword string
}

func (p ChangePasswordParams) LogValue() slog.Value {
	return slog.GroupValue(slog.String("user_id", p.UserID))
}

// ChangePassword overwrites the credential after proof of the old password.
// A completed change also clears any pending reset entry.
func (s *Service) ChangePassword(ctx context.Context, params ChangePasswordParams) error {
	u, err := s.userSvc.FindUser(ctx, params.UserID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(params.OldPassword, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify old password: %w", err)
	}

	if !ok {
		return ErrInvalidCredentials
	}

	passwordHash, err := s.hasher.Hash(params.NewPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	if err := s.repo.ChangePassword(ctx, u.ID, passwordHash); err != nil {
		return fmt.Errorf("change password for user %s: %w", u.ID, err)
	}

	return nil
}

// checkCode validates a submitted code against a pending entry. The expiry
// check comes first and applies regardless of match; the signature comparison
// is constant-time and never touches the raw stored code (there is none).
func (s *Service) checkCode(code string, storedHash *string, expiresAt *time.Time) (string, error) {
	if storedHash == nil || expiresAt == nil {
		return "", ErrCodeMismatch
	}

	if s.now().After(*expiresAt) {
		return "", ErrCodeExpired
	}

	codeHash := s.codeSigner.Sign(code)
	if !hmac.Equal([]byte(codeHash), []byte(*storedHash)) {
		return "", ErrCodeMismatch
	}

	return codeHash, nil
}

func (s *Service) sendCodeEmail(to, subject, tmplName, code string) error {
	data := map[string]string{
		"Title":   subject,
		"Header":  subject,
		"Code":    code,
		"BaseURL": s.cfg.Server.BaseURL,
	}

	if err := s.mailer.SendHTML([]string{to}, subject, tmplName, data); err != nil {
		return fmt.Errorf("send %s email: %w", tmplName, err)
	}

	return nil
}
