package user

import (
	"strings"
	"time"

	"github.com/avencillado/blognest/internal/model"
)

// User is one registered account. The pending verification and reset entries
// hold only the HMAC signature of an outstanding code and its expiry; the raw
// code is never persisted.
type User struct {
	model.Model

	Name         string
	Email        string
	PasswordHash string
	Verified     bool

	VerifyCodeHash  *string
	VerifyExpiresAt *time.Time
	ResetCodeHash   *string
	ResetExpiresAt  *time.Time
}

// NormalizeEmail trims whitespace and lower-cases an email address so that
// uniqueness is case-insensitive. Every read and write goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
