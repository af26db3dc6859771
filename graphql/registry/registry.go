// Package registry holds the resolvers behind the _extension query field.
package registry

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"shopzone.GO/core/apperr"
	"shopzone.GO/core/registry"
)

// ResolverFunc resolves one extension. Args is the decoded JSON object of
// the query's args; it is never nil.
type ResolverFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

var mu sync.Mutex
var locked int32

func entries() map[string]ResolverFunc {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryGraphQL); ok && v != nil {
		return v.(map[string]ResolverFunc)
	}
	return make(map[string]ResolverFunc)
}

// Register adds an extension. Call from init(); names are unique and the
// registry locks on the first Resolve.
func Register(name string, resolve ResolverFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryGraphQL) {
		panic("graphql/registry: locked (register only during init before first request)")
	}
	if name == "" || resolve == nil {
		panic("graphql/registry: empty name or nil resolver")
	}
	m := entries()
	if _, ok := m[name]; ok {
		panic("graphql/registry: duplicate " + name)
	}
	m[name] = resolve
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQL, m)
}

// Unregister removes an extension and unlocks the registry (tests only).
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryGraphQL)
	atomic.StoreInt32(&locked, 0)
	m := entries()
	delete(m, name)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQL, m)
}

// Resolve runs the named extension. An unknown name is a NotFound error.
func Resolve(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	if atomic.CompareAndSwapInt32(&locked, 0, 1) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryGraphQL)
	}
	resolve, ok := entries()[name]
	if !ok {
		return nil, apperr.NotFound("graphql.extension", "extension "+name)
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return resolve(ctx, args)
}

// Names returns the registered extension names, sorted.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	m := entries()
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
