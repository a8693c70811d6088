// Package registry maps typed tags (schemes, token types) to their
// implementations. Registries are filled at startup and read afterwards.
package registry

import (
	"fmt"
	"slices"
	"sync"

	domainerrors "passport/internal/domain/errors"
	"passport/internal/errors"
)

// Registry is a first-writer-wins map from a tag to an implementation.
type Registry[K comparable, V any] struct {
	name  string
	mu    sync.RWMutex
	items map[K]V
	order []K
}

// New creates an empty registry. name is used in error messages.
func New[K comparable, V any](name string) *Registry[K, V] {
	return &Registry[K, V]{
		name:  name,
		items: make(map[K]V),
	}
}

// Register adds value under key. It returns false and keeps the existing
// value when key is already registered.
func (r *Registry[K, V]) Register(key K, value V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return false
	}
	r.items[key] = value
	r.order = append(r.order, key)

	return true
}

// Lookup returns the value registered for key. A miss is a configuration
// error and should abort the caller.
func (r *Registry[K, V]) Lookup(key K) (V, error) {
	r.mu.RLock()
	value, ok := r.items[key]
	r.mu.RUnlock()

	if !ok {
		var zero V

		return zero, errors.Wrapf(domainerrors.ErrConfigurationMissing, "no %s registered for %v", r.name, key)
	}

	return value, nil
}

// Has reports whether key is registered.
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[key]

	return ok
}

// Keys returns the registered keys in registration order.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}

// Require fails when any of keys is missing, naming all of them.
func (r *Registry[K, V]) Require(keys ...K) error {
	var missing []string
	for _, key := range keys {
		if !r.Has(key) {
			missing = append(missing, fmt.Sprint(key))
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(domainerrors.ErrConfigurationMissing, "no %s registered for %v", r.name, missing)
	}

	return nil
}
