package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Connect creates a client and waits until it answers PING.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(cfg.ConnectionURL, "redis://") && !strings.HasPrefix(cfg.ConnectionURL, "rediss://") {
		return nil, fmt.Errorf("%w: unsupported scheme", ErrFailedToParseRedisConnString)
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToParseRedisConnString, err)
	}

	client := redis.NewClient(opts)
	if err := waitReady(ctx, client, cfg); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func waitReady(ctx context.Context, client redis.UniversalClient, cfg Config) error {
	attempts := max(cfg.RetryAttempts, 1)
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	var lastErr error
	for i := range attempts {
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval * time.Duration(i+1)):
		}
	}
	return fmt.Errorf("%w: %w", ErrRedisNotReady, lastErr)
}

// Healthcheck returns a function that pings Redis.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// HashGetter is the subset of the Redis client used by HashSource.
type HashGetter interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// HashSource reads a Redis hash as a source mapping.
type HashSource struct {
	client HashGetter
	key    string
}

// NewHashSource creates a source for the hash at key.
func NewHashSource(client HashGetter, key string) *HashSource {
	return &HashSource{client: client, key: key}
}

// Name implements source.Source.
func (s *HashSource) Name() string {
	return "redis:" + s.key
}

// Load returns every field of the hash. A missing hash yields an empty mapping.
func (s *HashSource) Load(ctx context.Context) (map[string]string, error) {
	if s.key == "" {
		return nil, ErrEmptyHashKey
	}
	values, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrHashRead, s.key, err)
	}
	return values, nil
}
