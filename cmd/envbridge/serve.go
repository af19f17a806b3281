package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/envbridge/core/bootstrap"
	"github.com/dmitrymomot/envbridge/core/constants"
	"github.com/dmitrymomot/envbridge/core/logger"
	"github.com/dmitrymomot/envbridge/core/server"
	"github.com/dmitrymomot/envbridge/integration/database/redis"
	"github.com/dmitrymomot/envbridge/middleware"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the per-request bootstrap over HTTP",
		Long: `Resolve the process constants once, then run BOOTSTRAP_PROFILE for every
request. With the server profile (default) request metadata is promoted on top
of the process constants and WP_AUTO_UPDATE_CORE is forced to false. With the
env profile every request sees the process constants unchanged. In both,
X-Forwarded-Proto: https marks the request as secure.

Endpoints:
  GET /healthz   liveness
  GET /readyz    readiness (pings Redis when configured)
  GET /          per-request bootstrap summary (names only, no values)
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			r, err := resolve(ctx)
			if err != nil {
				return err
			}
			defer r.Close()

			return r.boot(ctx, func(ctx context.Context, res *bootstrap.Result) error {
				var ready func(context.Context) error
				if r.redis != nil {
					ready = redis.Healthcheck(r.redis)
				}

				srv, err := server.NewFromConfig(r.cfg.Server, server.WithLogger(r.log))
				if err != nil {
					return err
				}
				return srv.Run(ctx, r.handler(res, ready))
			})
		},
	}
}

// handler builds the serve handler for the configured profile on top of the
// process-level result.
func (r *resolved) handler(res *bootstrap.Result, ready func(context.Context) error) http.Handler {
	cfg := handlerConfig{log: r.log, result: res, env: r.env, ready: ready}
	if r.profile == bootstrap.ProfileServer {
		cfg.loader = r.loader(bootstrap.ProfileServer)
	}
	return newHandler(cfg)
}

type handlerConfig struct {
	log *slog.Logger
	// loader runs per request. Nil serves result unchanged.
	loader *bootstrap.Loader
	result *bootstrap.Result
	env    map[string]string
	ready  func(context.Context) error
}

type bootstrapSummary struct {
	RequestID   string   `json:"request_id,omitempty"`
	Profile     string   `json:"profile"`
	TablePrefix string   `json:"table_prefix"`
	Secure      bool     `json:"secure"`
	AutoUpdate  bool     `json:"auto_update_core"`
	Defined     int      `json:"defined"`
	Filtered    []string `json:"filtered,omitempty"`
	Constants   []string `json:"constants"`
}

func newHandler(cfg handlerConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ALIVE"))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.ready != nil {
			if err := cfg.ready(r.Context()); err != nil {
				cfg.log.WarnContext(r.Context(), "readiness check failed", logger.Error(err))
				http.Error(w, "NOT READY", http.StatusServiceUnavailable)
				return
			}
		}
		_, _ = w.Write([]byte("READY"))
	})

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		res, ok := middleware.GetBootstrapResult(r.Context())
		if !ok {
			res = cfg.result
		}
		if res == nil {
			http.Error(w, "bootstrap did not run", http.StatusInternalServerError)
			return
		}
		autoUpdate, _ := res.Constants.String(bootstrap.AutoUpdateCoreConstant)
		requestID, _ := middleware.GetRequestID(r.Context())

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(bootstrapSummary{
			RequestID:   requestID,
			Profile:     res.Profile.String(),
			TablePrefix: res.TablePrefix,
			Secure:      middleware.IsSecure(r),
			AutoUpdate:  autoUpdate == "true",
			Defined:     len(res.Promotion.Defined),
			Filtered:    res.Promotion.Filtered,
			Constants:   res.Constants.Names(),
		})
	})

	skipProbes := func(r *http.Request) bool {
		return r.URL.Path == "/healthz" || r.URL.Path == "/readyz"
	}

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.LoggingWithConfig(middleware.LoggingConfig{Logger: cfg.log, Skip: skipProbes}),
	}
	if cfg.loader != nil {
		var base *constants.Registry
		if cfg.result != nil {
			base = cfg.result.Constants
		}
		mws = append(mws, middleware.Bootstrap(middleware.BootstrapConfig{
			Skip:   skipProbes,
			Loader: cfg.loader,
			Base:   base,
			Env:    cfg.env,
		}))
	}
	mws = append(mws, middleware.ForwardedProto())

	return middleware.Chain(mux, mws...)
}
