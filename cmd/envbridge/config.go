package main

import (
	"log/slog"

	"github.com/dmitrymomot/envbridge/core/config"
	"github.com/dmitrymomot/envbridge/core/logger"
	"github.com/dmitrymomot/envbridge/core/server"
	"github.com/dmitrymomot/envbridge/integration/database/redis"
	"github.com/dmitrymomot/envbridge/integration/storage/s3"
)

type appConfig struct {
	AppName   string `env:"APP_NAME" envDefault:"envbridge"`
	Env       string `env:"APP_ENV" envDefault:"production"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Profile  string   `env:"BOOTSTRAP_PROFILE" envDefault:"server"`
	Dir      string   `env:"BOOTSTRAP_DIR"`
	EnvFiles []string `env:"BOOTSTRAP_ENV_FILES" envSeparator:","`
	RedisKey string   `env:"BOOTSTRAP_REDIS_KEY"`

	S3     s3.Config
	Redis  redis.Config
	Server server.Config
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	err := config.Load(&cfg)
	return cfg, err
}

func newLogger(cfg appConfig) *slog.Logger {
	opts := []logger.Option{logger.WithLevel(logger.ParseLevel(cfg.LogLevel))}
	if cfg.LogFormat == "json" {
		opts = append(opts, logger.WithJSONFormatter())
	}
	if cfg.AppName != "" {
		opts = append(opts, logger.WithAttr(slog.String("service", cfg.AppName)))
	}
	return logger.New(opts...)
}
