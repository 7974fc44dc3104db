package worker

import (
	"context"
	"sync"
)

// Registry hands out named worker pools. The first Get for a name
// creates and starts the pool; later calls return the same instance and
// ignore the configuration, so different parts of the application can
// share a pool without passing it around.
type Registry struct {
	mu    sync.Mutex
	pools map[string]Pool
}

// NewRegistry creates an empty pool registry
func NewRegistry() *Registry {
	return &Registry{
		pools: make(map[string]Pool),
	}
}

// Get returns the pool registered under name, creating and starting it
// with config on first use
func (r *Registry) Get(ctx context.Context, name string, config Config) (Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.pools[name]; ok {
		return p, nil
	}

	p, err := NewPool(config)
	if err != nil {
		return nil, err
	}

	if err := p.Start(ctx); err != nil {
		return nil, err
	}

	r.pools[name] = p

	return p, nil
}

// Lookup returns the pool registered under name, if any
func (r *Registry) Lookup(name string) (Pool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pools[name]

	return p, ok
}

// Remove stops the pool registered under name and forgets it. Removing
// an unknown name is a no-op.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	p, ok := r.pools[name]
	delete(r.pools, name)
	r.mu.Unlock()

	if !ok {
		return nil
	}

	return p.Stop()
}

// StopAll stops every registered pool and empties the registry,
// returning the first stop error encountered
func (r *Registry) StopAll() error {
	r.mu.Lock()
	pools := make([]Pool, 0, len(r.pools))
	for _, p := range r.pools {
		pools = append(pools, p)
	}
	r.pools = make(map[string]Pool)
	r.mu.Unlock()

	var first error
	for _, p := range pools {
		if err := p.Stop(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
