package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey     contextKey = "user_id"
	ExternalIDKey contextKey = "external_id"
)

// GetUserIDFromContext returns the local user ID resolved by the auth
// middleware for the current request.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

// GetExternalIDFromContext returns the identity provider subject for the
// current request.
func GetExternalIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(ExternalIDKey)
	if val == nil {
		return "", false
	}

	externalID, ok := val.(string)
	return externalID, ok
}

func SetUserContext(ctx context.Context, userID uuid.UUID, externalID string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, ExternalIDKey, externalID)
	return ctx
}
