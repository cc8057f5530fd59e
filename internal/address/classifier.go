package address

import (
	"strings"

	"go.uber.org/zap"

	"chainkit/internal/domain/entity"
	"chainkit/internal/domain/service"
)

// ChainSet is the ordered collection of chain capabilities the classifier consults.
type ChainSet interface {
	Ordered() []service.ChainCapability
	Schemes() []string
}

// Classifier resolves raw user input to a chain and network. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	chains ChainSet
	logger *zap.Logger
}

// NewClassifier creates a classifier over chains.
func NewClassifier(chains ChainSet, logger *zap.Logger) *Classifier {
	return &Classifier{
		chains: chains,
		logger: logger.Named("AddressClassifier"),
	}
}

// attempt is one way of reading the input; it reports the accepted address, if any.
type attempt func() (entity.ClassifiedAddress, bool)

// ExtractAddress strips a recognized URI scheme (case-insensitively) and any query component.
func (c *Classifier) ExtractAddress(input string) string {
	s := strings.TrimSpace(input)
	lower := strings.ToLower(s)
	for _, scheme := range c.chains.Schemes() {
		if strings.HasPrefix(lower, scheme+":") {
			s = s[len(scheme)+1:]
			break
		}
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	return s
}

// Resolve returns the chain, network and canonical address of input. Chains are
// tried in priority order; for each chain a payment URI in one of its schemes is
// parsed first, then the normalized string is validated directly. The first
// acceptance wins. A false result means no chain accepts the input.
func (c *Classifier) Resolve(input string) (entity.ClassifiedAddress, bool) {
	raw := strings.TrimSpace(input)
	normalized := c.ExtractAddress(raw)

	var attempts []attempt
	for _, chain := range c.chains.Ordered() {
		if hasScheme(raw, chain.URISchemes()) {
			attempts = append(attempts, func() (entity.ClassifiedAddress, bool) {
				addr, ok := chain.ParseURI(raw)
				if !ok {
					return entity.ClassifiedAddress{}, false
				}
				return validateOn(chain, addr)
			})
		}
		attempts = append(attempts, func() (entity.ClassifiedAddress, bool) {
			return validateOn(chain, normalized)
		})
	}
	return c.firstAccepted(attempts)
}

// Classify returns the chain input belongs to.
func (c *Classifier) Classify(input string) (entity.ChainID, bool) {
	resolved, ok := c.Resolve(input)
	return resolved.Chain, ok
}

// IsValid reports whether any supported chain accepts input, as an address or a payment URI.
func (c *Classifier) IsValid(input string) bool {
	_, ok := c.Resolve(input)
	return ok
}

// NetworkOf returns the network of the first chain that accepts the normalized
// input. A false result means unknown, which is not the same as invalid.
func (c *Classifier) NetworkOf(input string) (entity.NetworkID, bool) {
	normalized := c.ExtractAddress(input)

	var attempts []attempt
	for _, chain := range c.chains.Ordered() {
		attempts = append(attempts, func() (entity.ClassifiedAddress, bool) {
			network, ok := chain.ResolveNetwork(normalized)
			return entity.ClassifiedAddress{Chain: chain.ID(), Network: network, Address: normalized}, ok
		})
	}
	resolved, ok := c.firstAccepted(attempts)
	return resolved.Network, ok
}

func (c *Classifier) firstAccepted(attempts []attempt) (entity.ClassifiedAddress, bool) {
	for _, try := range attempts {
		if resolved, ok := c.run(try); ok {
			return resolved, true
		}
	}
	return entity.ClassifiedAddress{}, false
}

// run executes one attempt; a panicking capability counts as a rejection.
func (c *Classifier) run(try attempt) (resolved entity.ClassifiedAddress, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("Chain capability panicked, treating as rejection", zap.Any("panic", r))
			resolved, ok = entity.ClassifiedAddress{}, false
		}
	}()
	return try()
}

func validateOn(chain service.ChainCapability, addr string) (entity.ClassifiedAddress, bool) {
	for _, network := range entity.Networks {
		if chain.ValidateAddress(addr, network) {
			return entity.ClassifiedAddress{Chain: chain.ID(), Network: network, Address: addr}, true
		}
	}
	return entity.ClassifiedAddress{}, false
}

func hasScheme(raw string, schemes []string) bool {
	lower := strings.ToLower(raw)
	for _, scheme := range schemes {
		if strings.HasPrefix(lower, scheme+":") {
			return true
		}
	}
	return false
}
