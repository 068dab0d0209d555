package utils

import (
	"context"

	"github.com/MKhiriev/go-user-accounts/models"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var UserCtxKey = contextKey("authenticatedUser")

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}
