package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avencillado/blognest/internal/middleware"
	"github.com/avencillado/blognest/internal/pkg/web"
)

func TestMiddleware_CheckContentType(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name, method, contentType string
		wantCode                  int
	}{
		{"JSON Post", http.MethodPost, web.MimeJSON, http.StatusOK},
		{"JSON Put", http.MethodPut, web.MimeJSON, http.StatusOK},
		{"JSON Patch", http.MethodPatch, web.MimeJSON, http.StatusOK},
		{"JSON with charset", http.MethodPost, "application/json; charset=utf-8", http.StatusUnsupportedMediaType},
		{"HTML Post", http.MethodPost, "text/html", http.StatusUnsupportedMediaType},
		{"Empty Content-Type Post", http.MethodPost, "", http.StatusUnsupportedMediaType},
		{"Get without Content-Type", http.MethodGet, "", http.StatusOK},
		{"Delete without Content-Type", http.MethodDelete, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req, rec := httptest.NewRequest(tt.method, "/test", http.NoBody), httptest.NewRecorder()
			if tt.contentType != "" {
				req.Header.Set(web.HeaderContentType, tt.contentType)
			}

			middleware.CheckContentType(handler).ServeHTTP(rec, req)

			if gotCode := rec.Code; gotCode != tt.wantCode {
				t.Errorf("rec.Code = %d, want: %d", gotCode, tt.wantCode)
			}
		})
	}
}
