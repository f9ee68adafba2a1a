package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// claimsKey holds the verified *Claims of the current request.
var claimsKey = contextKey{}

// SetAuthContext stores the verified token claims on ctx.
func SetAuthContext(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaimsFromContext returns the claims set by the auth middleware.
func GetClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

// GetUserIDFromContext returns the authenticated user, read from the token subject.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}
