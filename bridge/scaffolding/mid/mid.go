// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"
	"slices"

	"github.com/dev2ever/userservice/infrastructure/web"
)

type ctxKey int

const (
	userIDKey ctxKey = iota + 1
	rolesKey
)

func setUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the user id from the context.
func GetUserID(ctx context.Context) (string, error) {
	v, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return "", errors.New("user id not found in context")
	}

	return v, nil
}

func setRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, rolesKey, roles)
}

// GetRoles returns the caller's roles from the context.
func GetRoles(ctx context.Context) []string {
	v, ok := ctx.Value(rolesKey).([]string)
	if !ok {
		return nil
	}

	return v
}

func hasRole(ctx context.Context, role string) bool {
	return slices.Contains(GetRoles(ctx), role)
}

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}
