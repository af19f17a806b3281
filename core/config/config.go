package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsing wraps failures to parse environment variables into a struct.
	ErrParsing = errors.New("failed to parse environment configuration")
	// ErrNotPointer is returned when Load receives a non-pointer or nil pointer.
	ErrNotPointer = errors.New("config target must be a non-nil pointer to a struct")
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> any (struct value)
	mu         sync.Mutex
)

// DotenvFiles are read once, before the first Load. Missing files are ignored.
// Variables already set in the process environment are never overridden.
var DotenvFiles = []string{".env"}

func loadDotenv() {
	dotenvOnce.Do(func() {
		for _, f := range DotenvFiles {
			_ = godotenv.Load(f)
		}
	})
}

// Load parses environment variables into cfg. The first successful Load of a
// type is cached; later calls for the same type receive the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotPointer
	}
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return ErrNotPointer
	}

	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	loadDotenv()

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("%w: %w", ErrParsing, err)
	}
	cache.Store(typ, parsed)
	*cfg = parsed
	return nil
}

// MustLoad is Load that panics on failure. Intended for process startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse parses environment variables into cfg without touching the cache.
func Parse[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotPointer
	}
	loadDotenv()
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrParsing, err)
	}
	return nil
}

// ParseMap parses cfg from an explicit mapping instead of the process
// environment. Useful for tests and for values fetched from remote sources.
func ParseMap[T any](cfg *T, environment map[string]string) error {
	if cfg == nil {
		return ErrNotPointer
	}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return fmt.Errorf("%w: %w", ErrParsing, err)
	}
	return nil
}

// Reset clears the cache. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}
