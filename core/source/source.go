package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Source produces a key-value mapping.
type Source interface {
	Name() string
	Load(ctx context.Context) (map[string]string, error)
}

// Func adapts a function to Source.
type Func struct {
	SourceName string
	Fn         func(ctx context.Context) (map[string]string, error)
}

func (f Func) Name() string { return f.SourceName }

func (f Func) Load(ctx context.Context) (map[string]string, error) {
	return f.Fn(ctx)
}

// Environ reads the process environment.
func Environ() Source {
	return Func{SourceName: "environ", Fn: func(context.Context) (map[string]string, error) {
		return ParseEnviron(os.Environ()), nil
	}}
}

// ParseEnviron splits KEY=value entries on the first '='.
// Entries without '=' are ignored.
func ParseEnviron(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Map serves a fixed mapping. The map is copied on every Load.
func Map(name string, m map[string]string) Source {
	return Func{SourceName: name, Fn: func(context.Context) (map[string]string, error) {
		return maps.Clone(m), nil
	}}
}

// Dotenv reads dotenv files. Missing files are skipped because the environment
// may be provided by other means. Earlier files win on duplicate keys.
func Dotenv(paths ...string) Source {
	return Func{SourceName: "dotenv", Fn: func(context.Context) (map[string]string, error) {
		out := make(map[string]string)
		for _, path := range paths {
			values, err := godotenv.Read(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return nil, fmt.Errorf("%w: %s: %w", ErrDotenvParse, path, err)
			}
			Merge(out, values)
		}
		return out, nil
	}}
}

// Chain returns sources in priority order. Nil entries are dropped.
func Chain(sources ...Source) []Source {
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// LoadAll loads every source and merges them, earlier sources winning.
// Stops on the first error or context cancellation.
func LoadAll(ctx context.Context, sources ...Source) (map[string]string, error) {
	out := make(map[string]string)
	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceLoad, err)
		}
		values, err := s.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceLoad, s.Name(), err)
		}
		Merge(out, values)
	}
	return out, nil
}

// Merge copies src entries whose keys are absent from dst.
func Merge(dst, src map[string]string) {
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
}
