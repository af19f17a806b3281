package main

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/envbridge/core/bootstrap"
	"github.com/dmitrymomot/envbridge/core/constants"
	"github.com/dmitrymomot/envbridge/core/logger"
	"github.com/dmitrymomot/envbridge/core/source"
	"github.com/dmitrymomot/envbridge/integration/database/redis"
	"github.com/dmitrymomot/envbridge/integration/storage/s3"
)

// resolved is the process-level state every command starts from.
type resolved struct {
	cfg     appConfig
	log     *slog.Logger
	profile bootstrap.Profile
	env     map[string]string
	redis   *goredis.Client
}

func (r *resolved) Close() {
	if r.redis != nil {
		_ = r.redis.Close()
	}
}

// resolve loads configuration and every configured source.
func resolve(ctx context.Context) (*resolved, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	profile, err := bootstrap.ParseProfile(cfg.Profile)
	if err != nil {
		return nil, err
	}

	r := &resolved{cfg: cfg, log: log, profile: profile}
	srcs, err := r.sources(ctx)
	if err != nil {
		r.Close()
		return nil, err
	}

	env, err := source.LoadAll(ctx, srcs...)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.env = env

	names := make([]string, 0, len(srcs))
	for _, s := range srcs {
		names = append(names, s.Name())
	}
	log.Debug("sources loaded",
		logger.Component("envbridge"),
		logger.Profile(profile.String()),
		slog.Any("sources", names),
		logger.Count("keys", len(env)),
	)
	return r, nil
}

// sources returns the configured sources in priority order: process
// environment, dotenv files, S3 object, Redis hash.
func (r *resolved) sources(ctx context.Context) ([]source.Source, error) {
	srcs := []source.Source{source.Environ()}

	if len(r.cfg.EnvFiles) > 0 {
		srcs = append(srcs, source.Dotenv(r.cfg.EnvFiles...))
	}

	if r.cfg.S3.Enabled() {
		s3src, err := s3.New(ctx, r.cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("s3 source: %w", err)
		}
		srcs = append(srcs, s3src)
	}

	if r.cfg.RedisKey != "" {
		client, err := redis.Connect(ctx, r.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis source: %w", err)
		}
		r.redis = client
		srcs = append(srcs, redis.NewHashSource(client, r.cfg.RedisKey))
	}

	return source.Chain(srcs...), nil
}

// loader builds the bootstrap loader for the given profile.
func (r *resolved) loader(profile bootstrap.Profile) *bootstrap.Loader {
	return bootstrap.New(
		bootstrap.WithProfile(profile),
		bootstrap.WithBaseDir(r.cfg.Dir),
		bootstrap.WithLogger(r.log),
	)
}

// boot runs the process-level pass and hands the result to next.
// The server profile promotes request metadata, which does not exist at
// process level, so the process pass always uses the env profile.
func (r *resolved) boot(ctx context.Context, next bootstrap.Entrypoint) error {
	reg := constants.New()
	return r.loader(bootstrap.ProfileEnv).Boot(ctx, reg, bootstrap.Input{Env: r.env}, next)
}
