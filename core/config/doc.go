// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The files listed in DotenvFiles are loaded on first use without overriding
// variables already present in the process. Parsing uses caarlos0/env struct
// tags. ParseMap parses from an explicit mapping instead of the process
// environment and never caches.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/envbridge/core/config"
//
//	type BootstrapConfig struct {
//		Profile  string   `env:"BOOTSTRAP_PROFILE" envDefault:"env"`
//		EnvFiles []string `env:"BOOTSTRAP_ENV_FILES" envSeparator:","`
//	}
//
//	func main() {
//		var cfg BootstrapConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 BootstrapConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 BootstrapConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type ServerConfig struct {
//		Port int `env:"PORT" envDefault:"8080"`
//	}
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&ServerConfig{})
//	config.MustLoad(&RedisConfig{})
package config
