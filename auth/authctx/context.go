// Package authctx carries the authenticated principal through a request.
//
//	ctx = authctx.WithPrincipal(ctx, authctx.Principal{Subject: "alice"})
//	p, ok := authctx.PrincipalFrom(ctx)
package authctx

import (
	"context"
	"errors"
)

// Principal is the identity a request was authenticated as.
type Principal struct {
	Subject string
}

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var principalKey = contextKey{}

// ErrNoPrincipal is returned when the context carries no principal.
var ErrNoPrincipal = errors.New("authctx: no principal in context")

// WithPrincipal stores p in the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the principal stored in ctx.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// PrincipalOrError returns ErrNoPrincipal when ctx carries no principal.
func PrincipalOrError(ctx context.Context) (Principal, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}
	return p, nil
}
