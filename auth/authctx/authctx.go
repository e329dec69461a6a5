// Package authctx propagates the authenticated principal through request
// contexts. A single unexported key keeps handlers from depending on the
// middleware's internals.
package authctx

import (
	"context"
	"errors"
)

type contextKey struct{}

var principalKey = contextKey{}

// ErrNoPrincipal is returned when no principal is stored in the context.
var ErrNoPrincipal = errors.New("authctx: no principal in context")

// Set stores the authenticated principal in the context.
// The principal can be any type; webdemo stores auth.Principal.
func Set(ctx context.Context, principal any) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// Get retrieves the typed principal from the context.
func Get[T any](ctx context.Context) (T, bool) {
	val := ctx.Value(principalKey)
	if val == nil {
		var zero T
		return zero, false
	}
	p, ok := val.(T)
	return p, ok
}

// MustGet retrieves the typed principal from the context.
// Panics if missing; use only behind authentication middleware.
func MustGet[T any](ctx context.Context) T {
	p, ok := Get[T](ctx)
	if !ok {
		panic("authctx: principal not found in context or wrong type")
	}
	return p
}

// GetOrError retrieves the typed principal, returning ErrNoPrincipal if absent.
func GetOrError[T any](ctx context.Context) (T, error) {
	p, ok := Get[T](ctx)
	if !ok {
		var zero T
		return zero, ErrNoPrincipal
	}
	return p, nil
}
