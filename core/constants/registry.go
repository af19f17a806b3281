package constants

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry is a write-once key-value store. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	values map[string]any
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{values: make(map[string]any)}
}

// NewFrom creates a registry seeded with already defined names.
// The seed map is copied.
func NewFrom(defined map[string]any) *Registry {
	r := &Registry{values: make(map[string]any, len(defined))}
	maps.Copy(r.values, defined)
	return r
}

// Define stores value under name unless name is already defined.
// Reports whether the value was written.
func (r *Registry) Define(name string, value any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.values[name]; ok {
		return false
	}
	r.values[name] = value
	return true
}

// Defined reports whether name has a value.
func (r *Registry) Defined(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.values[name]
	return ok
}

// Get returns the value defined under name.
func (r *Registry) Get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[name]
	return v, ok
}

// String returns the value under name formatted as a string.
func (r *Registry) String(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok {
		return "", false
	}
	return Format(v), true
}

// Len returns the number of defined names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.values)
}

// Names returns all defined names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.values))
}

// All returns a copy of every defined name and value.
func (r *Registry) All() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.values)
}

// Strings returns every defined value formatted with Format.
func (r *Registry) Strings() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = Format(v)
	}
	return out
}

// Environ renders the registry as sorted NAME=value pairs suitable for
// exec.Cmd.Env.
func (r *Registry) Environ() []string {
	strs := r.Strings()
	env := make([]string, 0, len(strs))
	for _, name := range slices.Sorted(maps.Keys(strs)) {
		env = append(env, name+"="+strs[name])
	}
	return env
}

// Format converts a constant value to its string form.
// Booleans render as "true" / "false", nil as an empty string.
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(t)
	}
}
