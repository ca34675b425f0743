package identity

import (
	"context"
	"strings"
)

// Context carries the authenticated caller through request handling.
// BuyerIdentity is the stable external subject; BuyerName is display only.
type Context struct {
	BuyerIdentity string
	BuyerName     string
}

// IsAnonymous reports whether no authenticated identity is present.
func (c Context) IsAnonymous() bool {
	return strings.TrimSpace(c.BuyerIdentity) == ""
}

type ctxKey struct{}

// WithContext attaches the identity to the request context.
func WithContext(ctx context.Context, id Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the identity; the zero value means anonymous.
func FromContext(ctx context.Context) Context {
	if ctx == nil {
		return Context{}
	}
	if id, ok := ctx.Value(ctxKey{}).(Context); ok {
		return id
	}
	return Context{}
}
