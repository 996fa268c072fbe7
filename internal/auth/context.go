package auth

import (
	"context"
	"errors"
)

type ctxKey int

const userCtxKey ctxKey = iota

var ErrNoUserInContext = errors.New("auth: no authenticated user in context")

func ContextWithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userCtxKey, userID)
}

// UserFromContext returns the authenticated user's ID set by RequireToken.
func UserFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userCtxKey).(string)
	if !ok || userID == "" {
		return "", ErrNoUserInContext
	}
	return userID, nil
}
