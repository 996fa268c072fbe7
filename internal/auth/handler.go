package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avencillado/blognest/internal/config"
	"github.com/avencillado/blognest/internal/pkg/message"
	"github.com/avencillado/blognest/internal/pkg/web"
	"github.com/avencillado/blognest/internal/user"
)

const maskChar = "*"

type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (user.User, error)
	Login(ctx context.Context, params LoginParams) (token string, u *user.User, err error)
	SendVerifyCode(ctx context.Context, userID string) (time.Time, error)
	ConfirmVerifyCode(ctx context.Context, userID, code string) error
	SendResetCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, params ResetPasswordParams) error
	ChangePassword(ctx context.Context, params ChangePasswordParams) error
}

type Handler struct {
	svc AuthService
	cfg *config.Config
}

func NewHandler(svc AuthService, cfg *config.Config) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

// UserResponse is the account summary returned to clients. It never carries
// credential material.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type RegisterRequest struct {
	Name     string `json:"name,omitempty" validate:"required,min=2,max=30"`
	Email    string `json:"email,omitempty" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required,min=8,max=30,alphanum"`
}

func (r RegisterRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", maskChar),
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[RegisterRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := RegisterParams(req)
	newUser, err := h.svc.Register(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			web.RespondConflict(w, err, MsgUserExists, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgRegisterSuccess
	web.RespondCreated(w, &msg, newUserResponse(&newUser))
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required"`
}

func (r LoginRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", maskChar), slog.String("password", maskChar))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[LoginRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := LoginParams(req)
	token, u, err := h.svc.Login(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			web.RespondUnauthorized(w, err, message.InvalidUser, nil)
			return
		}
		if errors.Is(err, ErrUserNotVerified) {
			web.RespondForbidden(w, err, MsgNotVerified, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	cookieCfg := h.cfg.Cookie
	http.SetCookie(w, NewTokenCookie(cookieCfg.Name, token, cookieCfg.MaxAge.Duration))

	msg := MsgLoggedIn
	web.RespondOK(w, &msg, newUserResponse(u))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, ClearTokenCookie(h.cfg.Cookie.Name))

	msg := MsgLoggedOut
	web.RespondOK(w, &msg, &struct{}{})
}

func (h *Handler) SendVerifyCode(w http.ResponseWriter, r *http.Request) {
	userID, err := UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	expiresAt, err := h.svc.SendVerifyCode(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyVerified):
			web.RespondConflict(w, err, MsgAlreadyVerified, nil)
		case errors.Is(err, user.ErrNotFound):
			web.RespondNotFound(w, err, MsgUserNotFound, nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := fmt.Sprintf(MsgFmtCodeSent, h.cfg.Code.TTL.Duration)
	data := &CodeSentResponse{ExpiresAt: expiresAt}
	web.RespondOK(w, &msg, data)
}

type CodeSentResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

type VerifyCodeRequest struct {
	Code string `json:"code,omitempty" validate:"required,len=6,numeric"`
}

func (r VerifyCodeRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("code", maskChar))
}

func (h *Handler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	userID, err := UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[VerifyCodeRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	if err := h.svc.ConfirmVerifyCode(r.Context(), userID, req.Code); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyVerified):
			web.RespondConflict(w, err, MsgAlreadyVerified, nil)
		case errors.Is(err, ErrCodeExpired):
			web.RespondUnauthorized(w, err, MsgCodeExpired, nil)
		case errors.Is(err, ErrCodeMismatch):
			web.RespondUnauthorized(w, err, MsgCodeMismatch, nil)
		case errors.Is(err, user.ErrNotFound):
			web.RespondNotFound(w, err, MsgUserNotFound, nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := MsgVerifySuccess
	web.RespondOK(w, &msg, &struct{}{})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword,omitempty" validate:"required"`
	NewPassword string `json:"newPassword,omitempty" validate:"required,min=8,max=30,alphanum"`
}

func (r ChangePasswordRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("oldPassword", maskChar),
		slog.String("newPassword", maskChar),
	)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[ChangePasswordRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := ChangePasswordParams{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}
	if err := h.svc.ChangePassword(r.Context(), params); err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			web.RespondUnauthorized(w, err, MsgWrongPassword, nil)
		case errors.Is(err, user.ErrNotFound):
			web.RespondNotFound(w, err, MsgUserNotFound, nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := MsgPasswordChanged
	web.RespondOK(w, &msg, &struct{}{})
}

type ForgotPasswordRequest struct {
	Email string `json:"email,omitempty" validate:"required,email"`
}

func (r ForgotPasswordRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", maskChar))
}

// ForgotPassword responds with the same generic message whether or not the
// email exists so account existence does not leak.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[ForgotPasswordRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	if err := h.svc.SendResetCode(r.Context(), req.Email); err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgResetCodeSent
	web.RespondOK(w, &msg, &struct{}{})
}

type ResetPasswordRequest struct {
	Email       string `json:"email,omitempty" validate:"required,email"`
	Code        string `json:"code,omitempty" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword,omitempty" validate:"required,min=8,max=30,alphanum"`
}

func (r ResetPasswordRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", maskChar), slog.String("code", maskChar))
}

// ResetPassword consumes the reset code and sets the new password in a single
// call. All code failures share one generic message here; distinguishing them
// would leak account existence on an unauthenticated route.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[ResetPasswordRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := ResetPasswordParams(req)
	if err := h.svc.ResetPassword(r.Context(), params); err != nil {
		if errors.Is(err, ErrCodeMismatch) || errors.Is(err, ErrCodeExpired) {
			web.RespondUnauthorized(w, err, message.InvalidCode, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgPasswordReset
	web.RespondOK(w, &msg, &struct{}{})
}
