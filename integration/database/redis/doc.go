// Package redis provides Redis client initialization and a configuration
// source backed by a Redis hash.
//
// Shared deployment settings can live in one hash that every instance reads at
// startup. Keys and values of the hash become the source mapping:
//
//	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: "redis://localhost:6379/0"})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	src := redis.NewHashSource(client, "wordpress:production")
//	env, err := source.LoadAll(ctx, source.Environ(), src)
//
// Connect validates the URL (redis:// or rediss://), retries the initial ping
// with a linear backoff and returns ErrRedisNotReady when the server never
// answers. Healthcheck returns a ping function suitable for readiness probes.
package redis
