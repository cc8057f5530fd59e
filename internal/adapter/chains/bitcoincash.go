package chains

import (
	"github.com/gcash/bchd/chaincfg"
	"github.com/gcash/bchutil"

	"chainkit/internal/domain/entity"
	"chainkit/internal/domain/service"
)

// Compile-time check
var _ service.ChainCapability = (*BitcoinCash)(nil)

// BitcoinCash implements service.ChainCapability for the forked chain. It
// accepts CashAddr (with or without prefix) and legacy base58 addresses.
type BitcoinCash struct {
	params map[entity.NetworkID]*chaincfg.Params
}

// NewBitcoinCash creates the capability set of the forked chain.
func NewBitcoinCash() *BitcoinCash {
	return &BitcoinCash{
		params: map[entity.NetworkID]*chaincfg.Params{
			entity.NetworkLivenet: &chaincfg.MainNetParams,
			entity.NetworkTestnet: &chaincfg.TestNet3Params,
		},
	}
}

func (c *BitcoinCash) ID() entity.ChainID {
	return entity.ChainBCH
}

func (c *BitcoinCash) URISchemes() []string {
	return []string{"bitcoincash", "bchtest"}
}

func (c *BitcoinCash) ValidateAddress(addr string, network entity.NetworkID) bool {
	params, ok := c.params[network]
	if !ok || addr == "" {
		return false
	}
	decoded, err := bchutil.DecodeAddress(addr, params)
	if err != nil {
		return false
	}
	return decoded.IsForNet(params)
}

func (c *BitcoinCash) ParseURI(uri string) (string, bool) {
	return parsePaymentURI(uri, c.URISchemes())
}

func (c *BitcoinCash) ResolveNetwork(addr string) (entity.NetworkID, bool) {
	return resolveNetwork(c, addr)
}
