package auth

import (
	"log/slog"
	"net/http"

	"github.com/avencillado/blognest/internal/pkg/message"
	"github.com/avencillado/blognest/internal/pkg/security"
	"github.com/avencillado/blognest/internal/pkg/web"
	"github.com/avencillado/blognest/internal/platform/jwt"
)

// RequireToken authenticates the request from a Bearer header or, failing
// that, the session cookie. The verified subject is stored in the request
// context for handlers downstream.
func RequireToken(signer jwt.Signer, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := security.ExtractBearerToken(r)
			if err != nil {
				cookie, cookieErr := web.FindCookie(r.Cookies(), cookieName)
				if cookieErr != nil {
					slog.Debug("no credentials on request", "path", r.URL.Path)
					web.RespondUnauthorized(w, cookieErr, message.InvalidUser, nil)
					return
				}
				token = cookie.Value
			}

			claims, err := signer.Verify(token)
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidUser, nil)
				return
			}

			ctx := ContextWithUser(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
