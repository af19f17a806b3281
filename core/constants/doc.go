// Package constants provides the defined-constant registry: an append-only,
// write-once-per-name key-value store shared by everything that runs after the
// bootstrap phase.
//
// A name, once defined, keeps its value for the lifetime of the registry.
// Later attempts to define the same name are ignored and reported as such:
//
//	reg := constants.New()
//	reg.Define("DB_HOST", "db.internal") // true
//	reg.Define("DB_HOST", "localhost")   // false, value stays "db.internal"
//
// Values defined before the loader runs (for example by the host process) are
// seeded with NewFrom and take part in the same first-writer-wins rule.
//
// The registry is safe for concurrent use. It never removes or mutates entries.
package constants
