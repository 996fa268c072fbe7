package auth

import (
	"context"
	"errors"
	"time"

	"github.com/avencillado/blognest/internal/user"
)

// StubService implements AuthService for handler tests.
type StubService struct {
	RegisterFunc          func(ctx context.Context, params RegisterParams) (user.User, error)
	LoginFunc             func(ctx context.Context, params LoginParams) (string, *user.User, error)
	SendVerifyCodeFunc    func(ctx context.Context, userID string) (time.Time, error)
	ConfirmVerifyCodeFunc func(ctx context.Context, userID, code string) error
	SendResetCodeFunc     func(ctx context.Context, email string) error
	ResetPasswordFunc     func(ctx context.Context, params ResetPasswordParams) error
	ChangePasswordFunc    func(ctx context.Context, params ChangePasswordParams) error
}

var _ AuthService = (*StubService)(nil)

func (s *StubService) Register(ctx context.Context, params RegisterParams) (user.User, error) {
	if s.RegisterFunc == nil {
		return user.User{}, errors.New("Register not implemented by stub")
	}
	return s.RegisterFunc(ctx, params)
}

func (s *StubService) Login(ctx context.Context, params LoginParams) (string, *user.User, error) {
	if s.LoginFunc == nil {
		return "", nil, errors.New("Login not implemented by stub")
	}
	return s.LoginFunc(ctx, params)
}

func (s *StubService) SendVerifyCode(ctx context.Context, userID string) (time.Time, error) {
	if s.SendVerifyCodeFunc == nil {
		return time.Time{}, errors.New("SendVerifyCode not implemented by stub")
	}
	return s.SendVerifyCodeFunc(ctx, userID)
}

func (s *StubService) ConfirmVerifyCode(ctx context.Context, userID, code string) error {
	if s.ConfirmVerifyCodeFunc == nil {
		return errors.New("ConfirmVerifyCode not implemented by stub")
	}
	return s.ConfirmVerifyCodeFunc(ctx, userID, code)
}

func (s *StubService) SendResetCode(ctx context.Context, email string) error {
	if s.SendResetCodeFunc == nil {
		return errors.New("SendResetCode not implemented by stub")
	}
	return s.SendResetCodeFunc(ctx, email)
}

func (s *StubService) ResetPassword(ctx context.Context, params ResetPasswordParams) error {
	if s.ResetPasswordFunc == nil {
		return errors.New("ResetPassword not implemented by stub")
	}
	return s.ResetPasswordFunc(ctx, params)
}

func (s *StubService) ChangePassword(ctx context.Context, params ChangePasswordParams) error {
	if s.ChangePasswordFunc == nil {
		return errors.New("ChangePassword not implemented by stub")
	}
	return s.ChangePasswordFunc(ctx, params)
}
