package middleware

import (
	"errors"
	"net/http"

	"github.com/avencillado/blognest/internal/pkg/message"
	"github.com/avencillado/blognest/internal/pkg/web"
	"github.com/avencillado/blognest/internal/platform/validation"
)

// ValidateInput runs the validator over the decoded payload of type T.
func ValidateInput[T any](validator validation.Validator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params, err := web.ParamsFromContext[T](r.Context())
			if err != nil {
				web.RespondBadRequest(w, err, message.InvalidInput, nil)
				return
			}

			if errs := validator.ValidateStruct(params); errs != nil {
				web.RespondBadRequest(w, errors.New("invalid input"), message.InvalidInput, errs)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
