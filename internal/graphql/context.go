package graphql

import (
	"context"

	"github.com/feedwire/feed-service/internal/core/service"
)

type contextKey int

const identityKey contextKey = iota

// WithIdentity attaches the access gate's verification result to the request
// context so resolvers can apply their own authentication policy.
func WithIdentity(ctx context.Context, identity service.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func identityFrom(ctx context.Context) service.Identity {
	identity, _ := ctx.Value(identityKey).(service.Identity)
	return identity
}
