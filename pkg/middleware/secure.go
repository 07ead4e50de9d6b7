package middleware

import (
	"net/http"
	"strings"

	"github.com/vango-dev/assethelper/pkg/assets"
)

// SecureConfig configures the Secure middleware.
type SecureConfig struct {
	// TrustForwardedProto honors X-Forwarded-Proto and the Forwarded
	// header's proto parameter. Only enable it behind a proxy that sets
	// them. Disabled by default.
	TrustForwardedProto bool
}

// SecureOption configures the Secure middleware.
type SecureOption func(*SecureConfig)

// WithTrustForwardedProto enables or disables proxy header detection.
func WithTrustForwardedProto(trust bool) SecureOption {
	return func(c *SecureConfig) {
		c.TrustForwardedProto = trust
	}
}

// Secure stores IsSecure(r) in the request context with assets.WithSecure.
func Secure(opts ...SecureOption) func(http.Handler) http.Handler {
	var config SecureConfig
	for _, opt := range opts {
		opt(&config)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := assets.WithSecure(r.Context(), isSecure(r, config))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsSecure reports whether r arrived over TLS. Proxy headers are ignored.
func IsSecure(r *http.Request) bool {
	return isSecure(r, SecureConfig{})
}

func isSecure(r *http.Request, config SecureConfig) bool {
	if r.TLS != nil {
		return true
	}
	if !config.TrustForwardedProto {
		return false
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		// Proxies may append: "https, http". The first hop is the client's.
		first, _, _ := strings.Cut(proto, ",")
		return strings.EqualFold(strings.TrimSpace(first), "https")
	}
	if fwd := r.Header.Get("Forwarded"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		for _, part := range strings.Split(first, ";") {
			k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
			if ok && strings.EqualFold(k, "proto") {
				return strings.EqualFold(strings.Trim(v, `"`), "https")
			}
		}
	}
	return false
}
