package middleware

import (
	"context"

	"github.com/studiofx/platform/internal/model"
)

type contextKey string

const userKey contextKey = "authenticated_user"

// WithUser returns a context carrying the authenticated user. Identity is
// request-scoped; it is set at most once per request by whichever
// authentication mechanism claims the credential.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser extracts the authenticated user from the request context, or nil
// when no mechanism established one.
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userKey).(*model.User)
	return user
}

// ClearUser drops any previously established identity. Used on rejection so
// a partially applied identity from an earlier filter cannot leak through.
func ClearUser(ctx context.Context) context.Context {
	return context.WithValue(ctx, userKey, (*model.User)(nil))
}
