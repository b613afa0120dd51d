package common

import (
	"context"
	"fmt"
)

// Context keys for passing authentication data through context
type authContextKey int

const (
	playerTokenKey authContextKey = iota + 1000 // Offset from logger keys
)

// WithPlayerToken injects a player authentication token into the context
func WithPlayerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, playerTokenKey, token)
}

// PlayerTokenFromContext extracts the player authentication token from context
// Returns an error if the token is not found in the context
func PlayerTokenFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(playerTokenKey).(string)
	if !ok || token == "" {
		return "", fmt.Errorf("player token not found in context")
	}
	return token, nil
}

// PlayerTokenMiddleware injects a static bearer token into every request's context.
// A token already present in the context wins, so tests and callers can override it.
func PlayerTokenMiddleware(token string) Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		if _, err := PlayerTokenFromContext(ctx); err != nil && token != "" {
			ctx = WithPlayerToken(ctx, token)
		}
		return next(ctx, request)
	}
}
