// Package server wraps http.Server with graceful shutdown and env-driven
// configuration. It hosts the server bootstrap profile.
//
//	cfg := server.DefaultConfig()
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx, handler) // returns nil once ctx is canceled and shutdown completes
//
// Config reads SERVER_ADDR, SERVER_*_TIMEOUT, SERVER_MAX_HEADER_BYTES and the
// optional SERVER_TLS_CERT_FILE / SERVER_TLS_KEY_FILE pair.
package server
