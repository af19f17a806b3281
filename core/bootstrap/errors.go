package bootstrap

import "errors"

var (
	ErrUnknownProfile = errors.New("unknown bootstrap profile")
	ErrNoEntrypoint   = errors.New("bootstrap entrypoint is required")
	ErrEntrypoint     = errors.New("bootstrap entrypoint failed")
)
