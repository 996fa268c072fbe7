package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/avencillado/blognest/internal/auth"
	"github.com/avencillado/blognest/internal/config"
	"github.com/avencillado/blognest/internal/pkg/timex"
	"github.com/avencillado/blognest/internal/platform/email"
	"github.com/avencillado/blognest/internal/platform/hash"
	"github.com/avencillado/blognest/internal/platform/jwt"
	"github.com/avencillado/blognest/internal/user"
)

type authRepoStub struct {
	SetVerifyCodeFunc  func(ctx context.Context, userID, codeHash string, expiresAt time.Time) error
	VerifyFunc         func(ctx context.Context, userID, codeHash string) error
	SetResetCodeFunc   func(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	ResetPasswordFunc  func(ctx context.Context, email, codeHash, passwordHash string) error
	ChangePasswordFunc func(ctx context.Context, userID, passwordHash string) error
}

func (r *authRepoStub) SetVerifyCode(ctx context.Context, userID, codeHash string, expiresAt time.Time) error {
	if r.SetVerifyCodeFunc == nil {
		return errors.New("SetVerifyCode not implemented by stub")
	}
	return r.SetVerifyCodeFunc(ctx, userID, codeHash, expiresAt)
}

func (r *authRepoStub) Verify(ctx context.Context, userID, codeHash string) error {
	if r.VerifyFunc == nil {
		return errors.New("Verify not implemented by stub")
	}
	return r.VerifyFunc(ctx, userID, codeHash)
}

func (r *authRepoStub) SetResetCode(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	if r.SetResetCodeFunc == nil {
		return errors.New("SetResetCode not implemented by stub")
	}
	return r.SetResetCodeFunc(ctx, email, codeHash, expiresAt)
}

func (r *authRepoStub) ResetPassword(ctx context.Context, email, codeHash, passwordHash string) error {
	if r.ResetPasswordFunc == nil {
		return errors.New("ResetPassword not implemented by stub")
	}
	return r.ResetPasswordFunc(ctx, email, codeHash, passwordHash)
}

func (r *authRepoStub) ChangePassword(ctx context.Context, userID, passwordHash string) error {
	if r.ChangePasswordFunc == nil {
		return errors.New("ChangePassword not implemented by stub")
	}
	return r.ChangePasswordFunc(ctx, userID, passwordHash)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: &config.Server{BaseURL: "http://localhost:8888"},
		JWT:    &config.JWT{Issuer: "http://localhost:8888", TTL: timex.Duration{Duration: 168 * time.Hour}},
		Cookie: &config.Cookie{Name: "token", MaxAge: timex.Duration{Duration: 168 * time.Hour}},
		Code:   &config.Code{TTL: timex.Duration{Duration: 15 * time.Minute}},
	}
}

func plainHasher() *hash.StubHasher {
	return &hash.StubHasher{
		HashFunc: func(plain string) (string, error) { return "hashed:" + plain, nil },
		VerifyFunc: func(plain, hashed string) (bool, error) {
			return hashed == "hashed:"+plain, nil
		},
	}
}

func okMailer() *email.StubMailer {
	return &email.StubMailer{
		SendHTMLFunc: func(_ []string, _, _ string, _ map[string]string) error { return nil },
	}
}

func newTestService(repo auth.Repository, userSvc user.Service, mailer email.Mailer) *auth.Service {
	providers := &auth.Providers{
		Hasher:     plainHasher(),
		CodeSigner: &hash.StubSigner{},
		Signer: &jwt.StubSigner{
			SignFunc: func(subject string, _ []string, _ time.Duration) (string, error) {
				return "token-for-" + subject, nil
			},
		},
		Mailer: mailer,
	}
	return auth.NewService(repo, userSvc, providers, testConfig())
}

func singleUserService(u *user.User) *user.StubService {
	return &user.StubService{
		FindUserFunc: func(_ context.Context, userID string) (*user.User, error) {
			if u != nil && userID == u.ID {
				cp := *u
				return &cp, nil
			}
			return nil, user.ErrNotFound
		},
		FindUserByEmailFunc: func(_ context.Context, email string) (*user.User, error) {
			if u != nil && user.NormalizeEmail(email) == u.Email {
				cp := *u
				return &cp, nil
			}
			return nil, user.ErrNotFound
		},
	}
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	existing := &user.User{Email: "ann@x.com"}
	existing.ID = "u1"

	t.Run("Duplicate email conflicts even with different casing", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(&authRepoStub{}, singleUserService(existing), okMailer())
		_, err := svc.Register(context.Background(), auth.RegisterParams{
			Name:     "Ann",
			Email:    "  ANN@X.com ",
			Password: "secret1234",
		})
		if !errors.Is(err, auth.ErrUserExists) {
			t.Errorf("err = %v, want: %v", err, auth.ErrUserExists)
		}
	})

	t.Run("Stores the password hash, never the raw password", func(t *testing.T) {
		t.Parallel()

		var gotHash string
		userSvc := singleUserService(nil)
		userSvc.CreateUserFunc = func(_ context.Context, params user.CreateUserParams) (user.User, error) {
			gotHash = params.PasswordHash
			u := user.User{Name: params.Name, Email: params.Email, PasswordHash: params.PasswordHash}
			u.ID = "u2"
			return u, nil
		}

		svc := newTestService(&authRepoStub{}, userSvc, okMailer())
		_, err := svc.Register(context.Background(), auth.RegisterParams{
			Name:     "Bob",
			Email:    "bob@x.com",
			Password: "secret1234",
		})
		if err != nil {
			t.Fatal(err)
		}

		if gotHash != "hashed:secret1234" {
			t.Errorf("stored hash = %q, want: %q", gotHash, "hashed:secret1234")
		}
	})

	t.Run("Race on insert maps duplicate key to conflict", func(t *testing.T) {
		t.Parallel()

		userSvc := singleUserService(nil)
		userSvc.CreateUserFunc = func(_ context.Context, _ user.CreateUserParams) (user.User, error) {
			return user.User{}, user.ErrDuplicateEmail
		}

		svc := newTestService(&authRepoStub{}, userSvc, okMailer())
		_, err := svc.Register(context.Background(), auth.RegisterParams{
			Name:     "Cat",
			Email:    "cat@x.com",
			Password: "secret1234",
		})
		if !errors.Is(err, auth.ErrUserExists) {
			t.Errorf("err = %v, want: %v", err, auth.ErrUserExists)
		}
	})
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	verified := &user.User{Email: "ann@x.com", PasswordHash: "hashed:secret1234", Verified: true}
	verified.ID = "u1"

	tests := []struct {
		name     string
		stored   *user.User
		email    string
		password string
		wantErr  error
	}{
		{"Valid credentials", verified, "ann@x.com", "secret1234", nil},
		{"Unknown email", verified, "ghost@x.com", "secret1234", auth.ErrInvalidCredentials},
		{"Wrong password", verified, "ann@x.com", "nope12345", auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(&authRepoStub{}, singleUserService(tt.stored), okMailer())
			token, u, err := svc.Login(context.Background(), auth.LoginParams{Email: tt.email, Password: tt.password})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want: %v", err, tt.wantErr)
			}

			if tt.wantErr == nil {
				if token != "token-for-u1" {
					t.Errorf("token = %q, want: %q", token, "token-for-u1")
				}
				if u == nil || u.ID != "u1" {
					t.Errorf("u = %+v, want user u1", u)
				}
			}
		})
	}

	t.Run("Unverified account with correct password is rejected", func(t *testing.T) {
		t.Parallel()

		unverified := &user.User{Email: "bob@x.com", PasswordHash: "hashed:secret1234"}
		unverified.ID = "u2"

		svc := newTestService(&authRepoStub{}, singleUserService(unverified), okMailer())
		_, _, err := svc.Login(context.Background(), auth.LoginParams{Email: "bob@x.com", Password: "secret1234"})
		if !errors.Is(err, auth.ErrUserNotVerified) {
			t.Errorf("err = %v, want: %v", err, auth.ErrUserNotVerified)
		}
	})
}

func TestService_SendVerifyCode(t *testing.T) {
	t.Parallel()

	t.Run("Stores the signed code and mails the raw one", func(t *testing.T) {
		t.Parallel()

		pending := &user.User{Email: "ann@x.com"}
		pending.ID = "u1"

		var storedHash string
		var storedExpiry time.Time
		repo := &authRepoStub{
			SetVerifyCodeFunc: func(_ context.Context, _, codeHash string, expiresAt time.Time) error {
				storedHash = codeHash
				storedExpiry = expiresAt
				return nil
			},
		}

		var mailedCode string
		mailer := &email.StubMailer{
			SendHTMLFunc: func(to []string, _, _ string, data map[string]string) error {
				if len(to) != 1 || to[0] != "ann@x.com" {
					t.Errorf("to = %v, want: [ann@x.com]", to)
				}
				mailedCode = data["Code"]
				return nil
			},
		}

		svc := newTestService(repo, singleUserService(pending), mailer)
		expiresAt, err := svc.SendVerifyCode(context.Background(), "u1")
		if err != nil {
			t.Fatal(err)
		}

		if len(mailedCode) != 6 {
			t.Errorf("mailed code = %q, want a 6-digit code", mailedCode)
		}
		if storedHash != "signed:"+mailedCode {
			t.Errorf("stored hash = %q, want signature of mailed code %q", storedHash, mailedCode)
		}
		if strings.Contains(storedHash, mailedCode) && !strings.HasPrefix(storedHash, "signed:") {
			t.Error("raw code must not be stored")
		}
		if !expiresAt.Equal(storedExpiry) {
			t.Errorf("returned expiry %v differs from stored %v", expiresAt, storedExpiry)
		}
		if until := time.Until(expiresAt); until < 14*time.Minute || until > 15*time.Minute {
			t.Errorf("expiry %v not ~15m away", expiresAt)
		}
	})

	t.Run("Already verified account is rejected", func(t *testing.T) {
		t.Parallel()

		verified := &user.User{Email: "ann@x.com", Verified: true}
		verified.ID = "u1"

		svc := newTestService(&authRepoStub{}, singleUserService(verified), okMailer())
		if _, err := svc.SendVerifyCode(context.Background(), "u1"); !errors.Is(err, auth.ErrAlreadyVerified) {
			t.Errorf("err = %v, want: %v", err, auth.ErrAlreadyVerified)
		}
	})

	t.Run("Mail delivery failure surfaces to the caller", func(t *testing.T) {
		t.Parallel()

		pending := &user.User{Email: "ann@x.com"}
		pending.ID = "u1"

		repo := &authRepoStub{
			SetVerifyCodeFunc: func(_ context.Context, _, _ string, _ time.Time) error { return nil },
		}
		mailErr := errors.New("smtp down")
		mailer := &email.StubMailer{
			SendHTMLFunc: func(_ []string, _, _ string, _ map[string]string) error { return mailErr },
		}

		svc := newTestService(repo, singleUserService(pending), mailer)
		if _, err := svc.SendVerifyCode(context.Background(), "u1"); !errors.Is(err, mailErr) {
			t.Errorf("err = %v, want wrapped %v", err, mailErr)
		}
	})
}

func TestService_ConfirmVerifyCode(t *testing.T) {
	t.Parallel()

	future := time.Now().Add(10 * time.Minute)
	past := time.Now().Add(-time.Minute)
	signed := "signed:123456"

	pendingUser := func(hash *string, expiry *time.Time, verified bool) *user.User {
		u := &user.User{Email: "ann@x.com", Verified: verified, VerifyCodeHash: hash, VerifyExpiresAt: expiry}
		u.ID = "u1"
		return u
	}

	tests := []struct {
		name    string
		stored  *user.User
		code    string
		wantErr error
	}{
		{"Matching unexpired code succeeds", pendingUser(&signed, &future, false), "123456", nil},
		{"Wrong code is a mismatch", pendingUser(&signed, &future, false), "654321", auth.ErrCodeMismatch},
		{"Expired code fails even when matching", pendingUser(&signed, &past, false), "123456", auth.ErrCodeExpired},
		{"No pending code is a mismatch", pendingUser(nil, nil, false), "123456", auth.ErrCodeMismatch},
		{"Already verified account conflicts", pendingUser(&signed, &future, true), "123456", auth.ErrAlreadyVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var verifiedWith string
			repo := &authRepoStub{
				VerifyFunc: func(_ context.Context, _, codeHash string) error {
					verifiedWith = codeHash
					return nil
				},
			}

			svc := newTestService(repo, singleUserService(tt.stored), okMailer())
			err := svc.ConfirmVerifyCode(context.Background(), "u1", tt.code)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want: %v", err, tt.wantErr)
			}

			if tt.wantErr == nil && verifiedWith != signed {
				t.Errorf("repo.Verify called with %q, want: %q", verifiedWith, signed)
			}
			if tt.wantErr != nil && verifiedWith != "" {
				t.Error("repo.Verify must not be called on failure")
			}
		})
	}

	t.Run("Concurrent consume loser gets a mismatch", func(t *testing.T) {
		t.Parallel()

		repo := &authRepoStub{
			VerifyFunc: func(_ context.Context, _, _ string) error { return auth.ErrCodeMismatch },
		}

		svc := newTestService(repo, singleUserService(pendingUser(&signed, &future, false)), okMailer())
		if err := svc.ConfirmVerifyCode(context.Background(), "u1", "123456"); !errors.Is(err, auth.ErrCodeMismatch) {
			t.Errorf("err = %v, want: %v", err, auth.ErrCodeMismatch)
		}
	})
}

func TestService_SendResetCode(t *testing.T) {
	t.Parallel()

	t.Run("Known email stores and mails a code", func(t *testing.T) {
		t.Parallel()

		u := &user.User{Email: "ann@x.com", Verified: true}
		u.ID = "u1"

		var storedHash string
		repo := &authRepoStub{
			SetResetCodeFunc: func(_ context.Context, email, codeHash string, _ time.Time) error {
				if email != "ann@x.com" {
					t.Errorf("email = %q, want: %q", email, "ann@x.com")
				}
				storedHash = codeHash
				return nil
			},
		}

		var mailedCode string
		mailer := &email.StubMailer{
			SendHTMLFunc: func(_ []string, _, tmplName string, data map[string]string) error {
				if tmplName != "reset_password" {
					t.Errorf("template = %q, want: %q", tmplName, "reset_password")
				}
				mailedCode = data["Code"]
				return nil
			},
		}

		svc := newTestService(repo, singleUserService(u), mailer)
		if err := svc.SendResetCode(context.Background(), "ann@x.com"); err != nil {
			t.Fatal(err)
		}

		if storedHash != "signed:"+mailedCode {
			t.Errorf("stored hash = %q, want signature of mailed code %q", storedHash, mailedCode)
		}
	})

	t.Run("Unknown email is silently ignored", func(t *testing.T) {
		t.Parallel()

		mailed := false
		mailer := &email.StubMailer{
			SendHTMLFunc: func(_ []string, _, _ string, _ map[string]string) error {
				mailed = true
				return nil
			},
		}

		svc := newTestService(&authRepoStub{}, singleUserService(nil), mailer)
		if err := svc.SendResetCode(context.Background(), "ghost@x.com"); err != nil {
			t.Fatal(err)
		}
		if mailed {
			t.Error("no mail must be sent for an unknown email")
		}
	})
}

func TestService_ResetPassword(t *testing.T) {
	t.Parallel()

	future := time.Now().Add(10 * time.Minute)
	past := time.Now().Add(-time.Minute)
	signed := "signed:123456"

	resetUser := func(hash *string, expiry *time.Time) *user.User {
		u := &user.User{Email: "ann@x.com", PasswordHash: "hashed:old", Verified: true, ResetCodeHash: hash, ResetExpiresAt: expiry}
		u.ID = "u1"
		return u
	}

	tests := []struct {
		name    string
		stored  *user.User
		email   string
		code    string
		wantErr error
	}{
		{"Valid code commits the new password", resetUser(&signed, &future), "ann@x.com", "123456", nil},
		{"Wrong code is a mismatch", resetUser(&signed, &future), "ann@x.com", "654321", auth.ErrCodeMismatch},
		{"Expired code fails even when matching", resetUser(&signed, &past), "ann@x.com", "123456", auth.ErrCodeExpired},
		{"Unknown email maps to a mismatch", nil, "ghost@x.com", "123456", auth.ErrCodeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var committedHash string
			repo := &authRepoStub{
				ResetPasswordFunc: func(_ context.Context, _, codeHash, passwordHash string) error {
					if codeHash != signed {
						t.Errorf("consume guard = %q, want: %q", codeHash, signed)
					}
					committedHash = passwordHash
					return nil
				},
			}

			svc := newTestService(repo, singleUserService(tt.stored), okMailer())
			err := svc.ResetPassword(context.Background(), auth.ResetPasswordParams{
				Email:       tt.email,
				Code:        tt.code,
				NewPassword: "newsecret99",
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want: %v", err, tt.wantErr)
			}

			if tt.wantErr == nil && committedHash != "hashed:newsecret99" {
				t.Errorf("committed hash = %q, want: %q", committedHash, "hashed:newsecret99")
			}
			if tt.wantErr != nil && committedHash != "" {
				t.Error("password must not change on failure")
			}
		})
	}
}

func TestService_ChangePassword(t *testing.T) {
	t.Parallel()

	u := &user.User{Email: "ann@x.com", PasswordHash: "hashed:old12345", Verified: true}
	u.ID = "u1"

	tests := []struct {
		name        string
		oldPassword string
		wantErr     error
	}{
		{"Correct old password commits", "old12345", nil},
		{"Wrong old password is rejected", "wrong9999", auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var committedHash string
			repo := &authRepoStub{
				ChangePasswordFunc: func(_ context.Context, userID, passwordHash string) error {
					if userID != "u1" {
						t.Errorf("userID = %q, want: %q", userID, "u1")
					}
					committedHash = passwordHash
					return nil
				},
			}

			svc := newTestService(repo, singleUserService(u), okMailer())
			err := svc.ChangePassword(context.Background(), auth.ChangePasswordParams{
				UserID:      "u1",
				OldPassword: tt.oldPassword,
				NewPassword: "newsecret99",
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want: %v", err, tt.wantErr)
			}

			if tt.wantErr == nil && committedHash != "hashed:newsecret99" {
				t.Errorf("committed hash = %q, want: %q", committedHash, "hashed:newsecret99")
			}
			if tt.wantErr != nil && committedHash != "" {
				t.Error("hash must stay unchanged when the old password is wrong")
			}
		})
	}
}
