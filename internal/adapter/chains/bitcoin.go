package chains

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil"

	"chainkit/internal/domain/entity"
	"chainkit/internal/domain/service"
)

// Compile-time check
var _ service.ChainCapability = (*BTCUtilChain)(nil)

// BTCUtilChain implements service.ChainCapability for chains whose addresses
// btcutil can decode given the chain's network parameters.
type BTCUtilChain struct {
	id      entity.ChainID
	schemes []string
	params  map[entity.NetworkID]*chaincfg.Params
}

// NewBitcoin creates the capability set of the primary chain.
func NewBitcoin() *BTCUtilChain {
	return &BTCUtilChain{
		id:      entity.ChainBTC,
		schemes: []string{"bitcoin"},
		params: map[entity.NetworkID]*chaincfg.Params{
			entity.NetworkLivenet: &chaincfg.MainNetParams,
			entity.NetworkTestnet: &chaincfg.TestNet3Params,
		},
	}
}

// NewRhombus creates the capability set of the staking altcoin.
func NewRhombus() *BTCUtilChain {
	return &BTCUtilChain{
		id:      entity.ChainRHOM,
		schemes: []string{"rhombus"},
		params: map[entity.NetworkID]*chaincfg.Params{
			entity.NetworkLivenet: &RhombusMainNetParams,
			entity.NetworkTestnet: &RhombusTestNetParams,
		},
	}
}

// ID returns the chain identifier.
func (c *BTCUtilChain) ID() entity.ChainID {
	return c.id
}

// URISchemes returns the payment URI schemes of the chain.
func (c *BTCUtilChain) URISchemes() []string {
	return append([]string(nil), c.schemes...)
}

// ValidateAddress decodes addr with the network's parameters. btcutil matches
// segwit prefixes against every registered network, so the decoded address is
// checked against the requested one as well.
func (c *BTCUtilChain) ValidateAddress(addr string, network entity.NetworkID) bool {
	params, ok := c.params[network]
	if !ok || addr == "" {
		return false
	}
	decoded, err := btcutil.DecodeAddress(addr, params)
	if err != nil {
		return false
	}
	return decoded.IsForNet(params)
}

// ParseURI extracts the address of a payment URI using one of the chain's schemes.
func (c *BTCUtilChain) ParseURI(uri string) (string, bool) {
	return parsePaymentURI(uri, c.schemes)
}

// ResolveNetwork reports the first network on which addr is valid.
func (c *BTCUtilChain) ResolveNetwork(addr string) (entity.NetworkID, bool) {
	return resolveNetwork(c, addr)
}

func resolveNetwork(c service.ChainCapability, addr string) (entity.NetworkID, bool) {
	for _, network := range entity.Networks {
		if c.ValidateAddress(addr, network) {
			return network, true
		}
	}
	return "", false
}
