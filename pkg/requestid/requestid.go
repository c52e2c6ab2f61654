package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header carries the request id on both requests and responses
const Header = "X-Request-Id"

type contextKey struct{}

// New returns a fresh request id
func New() string {
	return uuid.NewString()
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request id stored in ctx, or "" outside a request
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
