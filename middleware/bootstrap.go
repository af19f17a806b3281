package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/envbridge/core/bootstrap"
	"github.com/dmitrymomot/envbridge/core/constants"
	"github.com/dmitrymomot/envbridge/pkg/servervars"
)

// bootstrapContextKey is used as a key for storing the bootstrap result in request context.
type bootstrapContextKey struct{}

// BootstrapConfig configures the per-request bootstrap middleware.
type BootstrapConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Loader runs the pass. Required; typically configured with ProfileServer.
	Loader *bootstrap.Loader
	// Base holds process-wide constants. Each request gets its own registry
	// seeded from Base through Loader.Seed, so requests never write to shared state.
	Base *constants.Registry
	// Env is the environment mapping used for the table prefix.
	Env map[string]string
}

// Bootstrap runs the loader once per request and stores the result and the
// request metadata mapping in the request context. The mapping is always built
// from the request, so a value normalized by ForwardedProto earlier in the
// chain is never promoted; normalization happens after promotion.
func Bootstrap(cfg BootstrapConfig) Middleware {
	if cfg.Loader == nil {
		cfg.Loader = bootstrap.New(bootstrap.WithProfile(bootstrap.ProfileServer))
	}
	if cfg.Base == nil {
		cfg.Base = constants.New()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			vars := servervars.FromRequest(r)
			reg := cfg.Loader.Seed(cfg.Base)
			res := cfg.Loader.Run(reg, bootstrap.Input{Env: cfg.Env, Server: vars})

			ctx := context.WithValue(r.Context(), serverVarsContextKey{}, vars)
			ctx = context.WithValue(ctx, bootstrapContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetBootstrapResult retrieves the per-request bootstrap result from the request context.
func GetBootstrapResult(ctx context.Context) (*bootstrap.Result, bool) {
	res, ok := ctx.Value(bootstrapContextKey{}).(*bootstrap.Result)
	return res, ok
}
