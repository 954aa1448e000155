package sources

import (
	"fmt"
	"sort"
)

// Registry maps provider names to Provider implementations. It is built once
// at startup; lookups of unregistered names fail with ErrUnknownProvider.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Default returns a registry with all built-in providers registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(AnimevostName, NewAnimevost())
	return r
}

func (r *Registry) Register(name string, p Provider) {
	r.providers[name] = p
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownProvider)
	}
	return p, nil
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
