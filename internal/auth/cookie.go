package auth

import (
	"net/http"
	"time"

	"github.com/avencillado/blognest/internal/pkg/web"
)

// NewTokenCookie bakes the session token into a hardened cookie.
func NewTokenCookie(name, token string, maxAge time.Duration) *http.Cookie {
	return web.NewHardenedCookie(name, token, maxAge)
}

// ClearTokenCookie expires the session cookie immediately.
func ClearTokenCookie(name string) *http.Cookie {
	return web.NewHardenedCookie(name, "", -time.Second)
}
