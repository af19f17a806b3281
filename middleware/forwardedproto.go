package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/envbridge/core/bootstrap"
	"github.com/dmitrymomot/envbridge/pkg/servervars"
)

// serverVarsContextKey is used as a key for storing request metadata in request context.
type serverVarsContextKey struct{}

// ForwardedProtoConfig configures the forwarded protocol middleware.
type ForwardedProtoConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// SetScheme rewrites r.URL.Scheme to "https" for normalized requests
	SetScheme bool
}

// ForwardedProto creates the forwarded protocol middleware with default configuration.
// It builds the request metadata mapping, sets HTTPS=on when X-Forwarded-Proto
// contains "https" and stores the mapping in the request context.
func ForwardedProto() Middleware {
	return ForwardedProtoWithConfig(ForwardedProtoConfig{})
}

// ForwardedProtoWithConfig creates the forwarded protocol middleware with custom configuration.
// TLS terminated upstream (for example by a load balancer) is treated as secure.
func ForwardedProtoWithConfig(cfg ForwardedProtoConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			vars, ok := GetServerVars(r.Context())
			if !ok {
				vars = servervars.FromRequest(r)
			}

			if bootstrap.NormalizeForwardedProto(vars) && cfg.SetScheme {
				r.URL.Scheme = "https"
			}

			ctx := context.WithValue(r.Context(), serverVarsContextKey{}, vars)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetServerVars retrieves the request metadata mapping from the request context.
func GetServerVars(ctx context.Context) (servervars.Vars, bool) {
	vars, ok := ctx.Value(serverVarsContextKey{}).(servervars.Vars)
	return vars, ok
}

// IsSecure reports whether the request is treated as HTTPS, either because TLS
// terminated locally or because the forwarded protocol was normalized.
func IsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	vars, ok := GetServerVars(r.Context())
	return ok && vars.String(bootstrap.HTTPSKey) == bootstrap.HTTPSOn
}
