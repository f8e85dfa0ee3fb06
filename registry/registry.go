// Package registry maps (namespace, resource type) pairs to resource
// providers and dispatches control plane calls to them.
//
// Registration happens during daemon startup; the map is read-only once
// request handling begins. The RWMutex guard makes late registration safe
// anyway, since SDK consumers compose their own startup.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
)

// Key identifies a provider registration. Namespace and resource type are
// compared case-insensitively.
type Key struct {
	Namespace    string
	ResourceType string
}

func keyOf(namespace, resourceType string) Key {
	return Key{
		Namespace:    strings.ToLower(namespace),
		ResourceType: strings.ToLower(resourceType),
	}
}

// Registration is one entry of the registry, as reported by List and the
// discovery endpoint.
type Registration struct {
	Namespace    string `json:"namespace"`
	ResourceType string `json:"resourceType"`
	Kind         string `json:"kind"`
}

// Registry is the authoritative lookup table from (namespace, resource type)
// to provider.
type Registry struct {
	mu        sync.RWMutex
	providers map[Key]controlplane.ResourceProvider
	// names preserves the casing the provider registered under.
	names map[Key]Registration
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		providers: map[Key]controlplane.ResourceProvider{},
		names:     map[Key]Registration{},
	}
}

// Register stores the mapping from (namespace, resourceType) to provider.
//
// Registering a pair twice is rejected with EConflict rather than silently
// overwriting; a collision during startup is a wiring bug worth failing on.
func (r *Registry) Register(namespace, resourceType string, provider controlplane.ResourceProvider) error {
	if namespace == "" || resourceType == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Msg:  "provider namespace and resource type are required",
			Op:   "registry.Register",
		}
	}
	if provider == nil {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "provider must not be nil",
			Op:   "registry.Register",
		}
	}

	key := keyOf(namespace, resourceType)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[key]; ok {
		return &errors.Error{
			Code: errors.EConflict,
			Msg:  fmt.Sprintf("provider already registered for %s/%s", namespace, resourceType),
			Op:   "registry.Register",
		}
	}

	r.providers[key] = provider
	r.names[key] = Registration{
		Namespace:    namespace,
		ResourceType: resourceType,
		Kind:         provider.ResourceProviderKind(),
	}
	return nil
}

// Get returns the provider registered for the pair, or false when none is.
func (r *Registry) Get(namespace, resourceType string) (controlplane.ResourceProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[keyOf(namespace, resourceType)]
	return p, ok
}

// List enumerates all registered entries sorted by namespace then resource
// type.
func (r *Registry) List() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]Registration, 0, len(r.names))
	for _, reg := range r.names {
		regs = append(regs, reg)
	}

	sort.Slice(regs, func(i, j int) bool {
		if regs[i].Namespace != regs[j].Namespace {
			return regs[i].Namespace < regs[j].Namespace
		}
		return regs[i].ResourceType < regs[j].ResourceType
	})

	return regs
}
