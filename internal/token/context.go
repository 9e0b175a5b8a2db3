package token

import "context"

type identityContextKey struct{}

// WithIdentity stores a verified username in the context. Only the
// verification middleware should call this.
func WithIdentity(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, identityContextKey{}, username)
}

// IdentityFromContext retrieves the verified username, if any.
func IdentityFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(identityContextKey{}).(string)
	return username, ok && username != ""
}
