package service

import "chainkit/internal/domain/entity"

// ChainCapability defines the address and URI primitives of a single chain.
// Implementations must not panic on malformed input; any failure is a rejection.
type ChainCapability interface {
	// ID returns the chain identifier.
	ID() entity.ChainID

	// URISchemes returns the lower-case payment URI schemes of the chain.
	URISchemes() []string

	// ValidateAddress reports whether addr is a valid address on the given network.
	ValidateAddress(addr string, network entity.NetworkID) bool

	// ParseURI extracts the address embedded in a payment URI.
	ParseURI(uri string) (string, bool)

	// ResolveNetwork reports the network encoded in addr, if any.
	ResolveNetwork(addr string) (entity.NetworkID, bool)
}
