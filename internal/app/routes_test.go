package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avencillado/blognest/internal/auth"
	"github.com/avencillado/blognest/internal/config"
	"github.com/avencillado/blognest/internal/pkg/timex"
	"github.com/avencillado/blognest/internal/platform/jwt"
	"github.com/avencillado/blognest/internal/platform/router"
	"github.com/avencillado/blognest/internal/platform/validation"
	"github.com/avencillado/blognest/internal/post"
	"github.com/avencillado/blognest/internal/user"
)

func routesConfig() *config.Config {
	return &config.Config{
		Server: &config.Server{BaseURL: "http://localhost:8888", MaxBodyBytes: 1 << 20},
		JWT:    &config.JWT{Issuer: "http://localhost:8888", TTL: timex.Duration{Duration: 168 * time.Hour}},
		Cookie: &config.Cookie{Name: "token", MaxAge: timex.Duration{Duration: 168 * time.Hour}},
		Code:   &config.Code{TTL: timex.Duration{Duration: 15 * time.Minute}},
	}
}

func routesSigner() *jwt.StubSigner {
	return &jwt.StubSigner{
		VerifyFunc: func(tokenString string) (*jwt.Claims, error) {
			if tokenString != "valid-token" {
				return nil, jwt.ErrInvalidToken
			}
			return &jwt.Claims{UserID: "u1"}, nil
		},
	}
}

func TestMountAuthRoutes(t *testing.T) {
	t.Parallel()

	svc := &auth.StubService{
		RegisterFunc: func(_ context.Context, params auth.RegisterParams) (user.User, error) {
			u := user.User{Name: params.Name, Email: params.Email}
			u.ID = "u1"
			return u, nil
		},
		ConfirmVerifyCodeFunc: func(_ context.Context, _, _ string) error { return nil },
		SendResetCodeFunc:     func(_ context.Context, _ string) error { return nil },
	}

	cfg := routesConfig()
	r := router.NewGoexpressRouter()
	mountAuthRoutes(r, auth.NewHandler(svc, cfg), validation.NewPlaygroundValidator(), routesSigner(), cfg)

	tests := []struct {
		name, method, path, body, token string
		wantStatus                      int
	}{
		{
			"Register decodes, validates and dispatches",
			http.MethodPost, "/register",
			`{"name":"Ann","email":"ann@x.com","password":"secret1234"}`, "",
			http.StatusCreated,
		},
		{
			"Register rejects an invalid payload",
			http.MethodPost, "/register",
			`{"name":"Ann","email":"not-an-email","password":"secret1234"}`, "",
			http.StatusBadRequest,
		},
		{
			"Verification code consumption requires a token",
			http.MethodPatch, "/register/verify-verification-code",
			`{"code":"123456"}`, "",
			http.StatusUnauthorized,
		},
		{
			"Verification code consumption dispatches with a token",
			http.MethodPatch, "/register/verify-verification-code",
			`{"code":"123456"}`, "valid-token",
			http.StatusOK,
		},
		{
			"Forgot password is open and generic",
			http.MethodPatch, "/reset-password/send-forgetPassword-code",
			`{"email":"ghost@x.com"}`, "",
			http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want: %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMountPostRoutes(t *testing.T) {
	t.Parallel()

	svc := &post.StubService{
		ListAllFunc: func(_ context.Context) ([]post.Post, error) { return nil, nil },
		DeletePostFunc: func(_ context.Context, postID, authorID string) error {
			if postID != "p1" {
				t.Errorf("postID = %q, want: %q", postID, "p1")
			}
			return nil
		},
	}

	cfg := routesConfig()
	r := router.NewGoexpressRouter()
	mountPostRoutes(r, post.NewHandler(svc), validation.NewPlaygroundValidator(), routesSigner(), cfg)

	tests := []struct {
		name, method, path, token string
		wantStatus                int
	}{
		{"List all requires a token", http.MethodGet, "/posts/getAllPosts", "", http.StatusUnauthorized},
		{"List all dispatches with a token", http.MethodGet, "/posts/getAllPosts", "valid-token", http.StatusOK},
		{"Delete extracts the path id", http.MethodDelete, "/posts/delete/p1", "valid-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want: %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}
