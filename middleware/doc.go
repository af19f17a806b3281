// Package middleware provides net/http middleware for the server bootstrap profile.
//
// All middleware follow the same pattern:
//   - Configuration structs for customization
//   - Default constructors for common use cases
//   - WithConfig constructors for advanced configuration
//   - Context helpers for retrieving stored values
//
// # Forwarded Protocol
//
// ForwardedProto builds the request metadata mapping and marks requests whose
// X-Forwarded-Proto contains "https" with HTTPS=on, so TLS terminated at a load
// balancer is treated as secure downstream:
//
//	h := middleware.Chain(app,
//		middleware.RequestID(),
//		middleware.Logging(log),
//		middleware.ForwardedProto(),
//		middleware.Bootstrap(middleware.BootstrapConfig{Loader: loader, Base: reg}),
//	)
//
//	func app(w http.ResponseWriter, r *http.Request) {
//		if middleware.IsSecure(r) {
//			// ...
//		}
//		res, _ := middleware.GetBootstrapResult(r.Context())
//		home, _ := res.Constants.String("WP_HOME")
//	}
//
// # Bootstrap
//
// Bootstrap runs the loader once per request on a registry seeded from the
// process registry. The request registry is discarded with the request.
//
// # Request ID
//
// RequestID assigns a UUID v4 (or reuses X-Request-ID when UseExisting is set)
// and echoes it in the response header.
package middleware
