package ecommerce

import (
	"strings"
	"sync"

	"github.com/shasanksaas/RMS-sub004/internal/domain/integration"
)

// Registry is an in-process implementation of integration.PlatformRegistry.
// Adapters register once at startup; lookups are read-heavy.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]integration.OrderPlatform
}

// NewRegistry creates an empty platform registry
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]integration.OrderPlatform),
	}
}

// Register adds an adapter to the registry, replacing any previous
// adapter for the same provider
func (r *Registry) Register(platform integration.OrderPlatform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[strings.ToLower(platform.Provider())] = platform
}

// Get returns the adapter for the provider
func (r *Registry) Get(provider string) (integration.OrderPlatform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	platform, ok := r.adapters[strings.ToLower(provider)]
	if !ok {
		return nil, integration.ErrPlatformNotConfigured
	}
	return platform, nil
}

var _ integration.PlatformRegistry = (*Registry)(nil)
