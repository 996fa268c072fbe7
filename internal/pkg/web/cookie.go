package web

import (
	"errors"
	"net/http"
	"slices"
	"time"
)

// NewHardenedCookie returns an HTTP-only, SameSite-Strict cookie.
func NewHardenedCookie(name, val string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    val,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func FindCookie(cookies []*http.Cookie, name string) (*http.Cookie, error) {
	index := slices.IndexFunc(cookies, func(c *http.Cookie) bool {
		return c.Name == name
	})

	if index < 0 {
		return nil, errors.New("cookie not set")
	}

	return cookies[index], nil
}
