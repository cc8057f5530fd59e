package chains

import (
	"sort"

	"chainkit/internal/domain/entity"
	"chainkit/internal/domain/service"
)

// Registry holds the capability sets of the supported chains in priority order.
type Registry struct {
	ordered []service.ChainCapability
	byID    map[entity.ChainID]service.ChainCapability
	schemes []string
}

// NewRegistry creates a registry; the argument order is the disambiguation order.
func NewRegistry(caps ...service.ChainCapability) *Registry {
	r := &Registry{
		ordered: caps,
		byID:    make(map[entity.ChainID]service.ChainCapability, len(caps)),
	}
	for _, c := range caps {
		r.byID[c.ID()] = c
		r.schemes = append(r.schemes, c.URISchemes()...)
	}
	// Longest first so "bitcoincash" is stripped before "bitcoin" could match.
	sort.SliceStable(r.schemes, func(i, j int) bool {
		return len(r.schemes[i]) > len(r.schemes[j])
	})
	return r
}

// DefaultRegistry returns the registry of the three supported chains.
func DefaultRegistry() *Registry {
	return NewRegistry(NewBitcoin(), NewBitcoinCash(), NewRhombus())
}

// Ordered returns the capability sets in priority order.
func (r *Registry) Ordered() []service.ChainCapability {
	return append([]service.ChainCapability(nil), r.ordered...)
}

// Get returns the capability set of a chain.
func (r *Registry) Get(id entity.ChainID) (service.ChainCapability, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Schemes returns every recognized URI scheme, longest first.
func (r *Registry) Schemes() []string {
	return append([]string(nil), r.schemes...)
}
