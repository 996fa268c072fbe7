package security_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/avencillado/blognest/internal/pkg/security"
)

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	for range 100 {
		code, err := security.GenerateCode()
		if err != nil {
			t.Fatal(err)
		}

		if len(code) != 6 {
			t.Fatalf("len(code) = %d, want: 6", len(code))
		}

		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}

		if n < 100000 || n > 999999 {
			t.Errorf("code = %d, want a value in [100000, 999999]", n)
		}
	}
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, header, want string
		wantErr            bool
	}{
		{"Valid bearer token", "Bearer abc123", "abc123", false},
		{"Missing header", "", "", true},
		{"Missing prefix", "abc123", "", true},
		{"Extra whitespace", "Bearer   abc123", "abc123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := http.NewRequest(http.MethodGet, "/", http.NoBody)
			if err != nil {
				t.Fatal(err)
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, err := security.ExtractBearerToken(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractBearerToken() error = %v, wantErr: %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractBearerToken() = %q, want: %q", got, tt.want)
			}
		})
	}
}
