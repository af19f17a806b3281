package source

import "errors"

var (
	// ErrSourceLoad wraps any failure to read a source.
	ErrSourceLoad = errors.New("failed to load configuration source")
	// ErrDotenvParse is returned when a dotenv file exists but cannot be parsed.
	ErrDotenvParse = errors.New("failed to parse dotenv file")
)
