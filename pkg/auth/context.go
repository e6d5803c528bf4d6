package auth

import (
	"context"
	"errors"
)

// UserContext is the authenticated caller, extracted from the token.
type UserContext struct {
	UserID   string
	Email    string
	Nickname string
}

type contextKey string

const userContextKey contextKey = "user"

// SetUserInContext adds the authenticated user to the context.
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the authenticated user from the context.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}
