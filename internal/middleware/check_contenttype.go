package middleware

import (
	"fmt"
	"net/http"

	"github.com/avencillado/blognest/internal/pkg/message"
	"github.com/avencillado/blognest/internal/pkg/web"
)

// CheckContentType rejects body-carrying requests that are not JSON.
func CheckContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			contentType := r.Header.Get(web.HeaderContentType)
			if contentType != web.MimeJSON {
				web.Fail(w, http.StatusUnsupportedMediaType,
					fmt.Errorf("invalid content-type: %s", contentType), message.InvalidInput, nil)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
