package bootstrap

import (
	"path/filepath"
	"reflect"
	"strings"

	"github.com/dmitrymomot/envbridge/core/constants"
)

const (
	// DefaultTablePrefix is used when WP_TABLE_PREFIX is unset or empty.
	DefaultTablePrefix = "wp_"
	// TablePrefixEnv names the variable holding the table prefix.
	TablePrefixEnv = "WP_TABLE_PREFIX"
	// AutoUpdateCoreConstant is forced to false in the server profile.
	AutoUpdateCoreConstant = "WP_AUTO_UPDATE_CORE"
	// BasePathConstant holds the application root with a trailing separator.
	BasePathConstant = "ABSPATH"
	// ForwardedProtoKey is X-Forwarded-Proto in the request-context mapping.
	ForwardedProtoKey = "HTTP_X_FORWARDED_PROTO"
	// HTTPSKey is the request-context flag downstream code checks for TLS.
	HTTPSKey = "HTTPS"
	// HTTPSOn is the value HTTPSKey is set to.
	HTTPSOn = "on"
)

// Filter decides whether a source value may become a constant.
type Filter func(value any) bool

// AcceptAll lets every value through.
func AcceptAll(any) bool { return true }

// IsScalar reports whether v is a string, number or boolean.
// Nil, slices, maps, structs, pointers and functions are not scalars.
func IsScalar(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// ConstantName derives the constant name for a source key.
func ConstantName(key string) string {
	return strings.ToUpper(key)
}

// Promotion is the outcome of promoting one source mapping.
type Promotion struct {
	Defined  []string // names written by this call
	Skipped  []string // names that were already defined
	Filtered []string // names whose value failed the filter
}

// Promote defines ConstantName(key) = value for every pair whose name is not
// yet defined and whose value passes filter. A nil filter accepts everything.
// Traversal order is unspecified.
func Promote[V any](reg *constants.Registry, src map[string]V, filter Filter) Promotion {
	if filter == nil {
		filter = AcceptAll
	}

	var p Promotion
	for key, value := range src {
		name := ConstantName(key)
		if reg.Defined(name) {
			p.Skipped = append(p.Skipped, name)
			continue
		}
		if !filter(value) {
			p.Filtered = append(p.Filtered, name)
			continue
		}
		if reg.Define(name, value) {
			p.Defined = append(p.Defined, name)
		} else {
			// two keys differing only in case map to the same name
			p.Skipped = append(p.Skipped, name)
		}
	}
	return p
}

// ResolveTablePrefix returns env[WP_TABLE_PREFIX] when non-empty, else "wp_".
func ResolveTablePrefix(env map[string]string) string {
	if prefix := env[TablePrefixEnv]; prefix != "" {
		return prefix
	}
	return DefaultTablePrefix
}

// NormalizeForwardedProto sets server[HTTPS]="on" when the forwarded protocol
// contains "https". Reports whether the flag was set. A missing header leaves
// the mapping untouched.
func NormalizeForwardedProto(server map[string]any) bool {
	if server == nil {
		return false
	}
	proto, ok := server[ForwardedProtoKey]
	if !ok {
		return false
	}
	if !strings.Contains(constants.Format(proto), "https") {
		return false
	}
	server[HTTPSKey] = HTTPSOn
	return true
}

// DisableAutoUpdate defines WP_AUTO_UPDATE_CORE=false unless something defined
// it first. Reports whether the value was written.
func DisableAutoUpdate(reg *constants.Registry) bool {
	return reg.Define(AutoUpdateCoreConstant, false)
}

// BasePath returns the absolute form of dir with exactly one trailing separator.
func BasePath(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	sep := string(filepath.Separator)
	if strings.HasSuffix(dir, sep) {
		return dir
	}
	return dir + sep
}

// DefineBasePath defines ABSPATH as BasePath(dir) unless it is already defined.
func DefineBasePath(reg *constants.Registry, dir string) bool {
	if reg.Defined(BasePathConstant) {
		return false
	}
	return reg.Define(BasePathConstant, BasePath(dir))
}
