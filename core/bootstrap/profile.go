package bootstrap

import (
	"fmt"
	"strings"
)

// Profile selects which source mapping the loader promotes and which
// deployment policies it applies.
type Profile string

const (
	// ProfileEnv promotes process environment variables as-is.
	ProfileEnv Profile = "env"
	// ProfileServer promotes scalar request metadata and disables core auto-updates.
	ProfileServer Profile = "server"
)

// ParseProfile converts a profile name. Empty input yields ProfileEnv.
func ParseProfile(s string) (Profile, error) {
	switch Profile(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProfileEnv:
		return ProfileEnv, nil
	case ProfileServer:
		return ProfileServer, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProfile, s)
	}
}

func (p Profile) String() string {
	return string(p)
}

// filter returns the value filter promotion uses for this profile.
func (p Profile) filter() Filter {
	if p == ProfileServer {
		return IsScalar
	}
	return AcceptAll
}
