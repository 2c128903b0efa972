package engine

import (
	"reflect"
	"sync"
)

// ResourceStore is a thread-safe container for global game resources
// It allows systems to access shared data (Time, Settings, Assets) without coupling to Game
type ResourceStore struct {
	mu        sync.RWMutex
	resources map[reflect.Type]any
}

// NewResourceStore creates a new empty resource store
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		resources: make(map[reflect.Type]any),
	}
}

// AddResource registers or replaces a resource keyed by T, a pointer or interface type
func AddResource[T any](rs *ResourceStore, resource T) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.resources[reflect.TypeFor[T]()] = resource
}

// GetResource retrieves a resource of type T, zero value and false if not found
func GetResource[T any](rs *ResourceStore) (T, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	val, ok := rs.resources[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// RemoveResource deletes a resource of type T, reports whether it existed
func RemoveResource[T any](rs *ResourceStore) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	t := reflect.TypeFor[T]()
	_, ok := rs.resources[t]
	delete(rs.resources, t)
	return ok
}

// MustGetResource retrieves a resource or panics if missing
// Useful for core resources that must exist
func MustGetResource[T any](rs *ResourceStore) T {
	res, ok := GetResource[T](rs)
	if !ok {
		panic("Required resource not found: " + reflect.TypeFor[T]().String())
	}
	return res
}
