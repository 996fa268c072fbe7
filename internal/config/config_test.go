package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avencillado/blognest/internal/config"
)

const testConfig = `{
  "server": {
    "base_url": "http://localhost:8888",
    "port": 8888,
    "read_timeout": "10s",
    "max_body_bytes": 1048576
  },
  "db": {
    "driver": "pgx",
    "ping_timeout": "5s"
  },
  "jwt": {
    "issuer": "blognest",
    "jti_length": 16,
    "ttl": "168h"
  },
  "cookie": {
    "name": "token",
    "max_age": "168h"
  },
  "code": {
    "ttl": "15m"
  },
  "smtp": {
    "host": "localhost",
    "port": 1025
  }
}`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(writeTestConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	if got, want := cfg.Server.Port, 8888; got != want {
		t.Errorf("cfg.Server.Port = %d, want: %d", got, want)
	}

	if got, want := cfg.JWT.TTL.Duration, 168*time.Hour; got != want {
		t.Errorf("cfg.JWT.TTL = %v, want: %v", got, want)
	}

	if got, want := cfg.Code.TTL.Duration, 15*time.Minute; got != want {
		t.Errorf("cfg.Code.TTL = %v, want: %v", got, want)
	}

	if got, want := cfg.Cookie.Name, "token"; got != want {
		t.Errorf("cfg.Cookie.Name = %q, want: %q", got, want)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("BASE_URL", "https://blognest.example.com")
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("SMTP_PASS", "hunter2")

	cfg, err := config.Load(writeTestConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	if got, want := cfg.Server.Port, 9999; got != want {
		t.Errorf("cfg.Server.Port = %d, want: %d", got, want)
	}

	if got, want := cfg.Server.BaseURL, "https://blognest.example.com"; got != want {
		t.Errorf("cfg.Server.BaseURL = %q, want: %q", got, want)
	}

	if got, want := cfg.SMTP.User, "mailer@example.com"; got != want {
		t.Errorf("cfg.SMTP.User = %q, want: %q", got, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}
