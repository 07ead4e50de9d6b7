package assets

import "context"

type secureKey struct{}

// WithSecure records whether the current request arrived over TLS.
// Resolvers read it in preference to Site.Secure.
func WithSecure(ctx context.Context, secure bool) context.Context {
	return context.WithValue(ctx, secureKey{}, secure)
}

// SecureFromContext returns the value stored by WithSecure.
func SecureFromContext(ctx context.Context) (secure, ok bool) {
	secure, ok = ctx.Value(secureKey{}).(bool)
	return secure, ok
}
