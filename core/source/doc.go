// Package source provides the mappings the bootstrap loader promotes.
//
// A Source returns a flat string-to-string mapping. Sources are loaded in
// order; when a key appears in more than one source the earlier one wins,
// matching the registry's first-writer-wins rule:
//
//	srcs := source.Chain(
//		source.Environ(),
//		source.Dotenv(".env.local", ".env"),
//	)
//	env, err := source.LoadAll(ctx, srcs...)
//
// Remote sources live next to their clients in integration/storage/s3 and
// integration/database/redis and satisfy the same interface.
package source
