package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nodegate/nodegate/internal/core/domain"
)

// ChainFactory builds the live connection objects for one chain family.
// Implemented per chain under internal/adapters/chain.
type ChainFactory interface {
	// Supports checks if the factory handles the given chain name.
	Supports(chain string) bool

	// Build performs the network connection setup for one key: dialing
	// endpoints and loading the asset catalog. Potentially slow, may fail.
	Build(ctx context.Context, key domain.NetworkKey) (*domain.ChainInstance, error)
}

// Registry owns the lifecycle of one ChainInstance per NetworkKey.
// Instances are created lazily on first request and live until Close;
// concurrent requests for an uninitialized key collapse onto a single
// in-flight initialization. A failed initialization is not cached, so a
// later call may retry.
type Registry struct {
	factories []ChainFactory

	mu        sync.RWMutex
	instances map[domain.NetworkKey]*domain.ChainInstance
	order     []domain.NetworkKey // successful-init order, for stable listing

	group singleflight.Group
}

// NewRegistry creates a registry over the given chain factories.
func NewRegistry(factories ...ChainFactory) *Registry {
	return &Registry{
		factories: factories,
		instances: make(map[domain.NetworkKey]*domain.ChainInstance),
	}
}

// GetOrCreate returns the live instance for (chain, network), initializing it
// on first use. Idempotent: all concurrent callers for the same key receive
// the same instance or the same initialization failure.
func (r *Registry) GetOrCreate(ctx context.Context, chain, network string) (*domain.ChainInstance, error) {
	key := domain.NewNetworkKey(chain, network)
	if key.Chain == "" || key.Network == "" {
		return nil, fmt.Errorf("chain and network are required")
	}

	r.mu.RLock()
	inst := r.instances[key]
	r.mu.RUnlock()
	if inst != nil {
		return inst, nil
	}

	// The singleflight group serializes initialization per key only;
	// different keys initialize independently.
	v, err, _ := r.group.Do(key.String(), func() (interface{}, error) {
		r.mu.RLock()
		existing := r.instances[key]
		r.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		factory := r.factoryFor(key.Chain)
		if factory == nil {
			return nil, fmt.Errorf("chain %s not supported", key.Chain)
		}

		built, err := factory.Build(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize %s: %w", key, err)
		}

		r.mu.Lock()
		r.instances[key] = built
		r.order = append(r.order, key)
		r.mu.Unlock()

		return built, nil
	})
	if err != nil {
		// Nothing is cached on failure; the next caller re-attempts
		// initialization from scratch.
		return nil, err
	}

	return v.(*domain.ChainInstance), nil
}

// Get returns an already-initialized instance without triggering
// initialization.
func (r *Registry) Get(chain, network string) (*domain.ChainInstance, bool) {
	key := domain.NewNetworkKey(chain, network)
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[key]
	return inst, ok
}

// ListInitialized returns the instances that completed initialization, in
// completion order. An empty chain name lists every chain.
func (r *Registry) ListInitialized(chain string) []*domain.ChainInstance {
	key := domain.NewNetworkKey(chain, "")

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.ChainInstance, 0, len(r.order))
	for _, k := range r.order {
		if key.Chain != "" && k.Chain != key.Chain {
			continue
		}
		out = append(out, r.instances[k])
	}
	return out
}

// Close tears down every held connection. Called once at process shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, inst := range r.instances {
		if closer, ok := inst.Node.(interface{ Close() }); ok {
			closer.Close()
		}
	}
	r.instances = make(map[domain.NetworkKey]*domain.ChainInstance)
	r.order = nil
}

func (r *Registry) factoryFor(chain string) ChainFactory {
	for _, f := range r.factories {
		if f.Supports(chain) {
			return f
		}
	}
	return nil
}
