package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"chainkit/internal/adapter/chains"
	"chainkit/internal/domain/entity"
	"chainkit/internal/domain/service"
)

const (
	btcLivenet  = "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"
	btcTestnet  = "mrCDrCybB6J1vRfbwM5hemdJz73FwDBC8r"
	btcBech32   = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
	bchLivenet  = "qp63uahgrxged4z5jswyt5dn5v3lzsem6cy4spdc2h"
	bchTestnet  = "qp63uahgrxged4z5jswyt5dn5v3lzsem6cq85x00dt"
	rhomLivenet = "RjJ4cn5Bg58D2khGiNRmQW1yWtA6Py9kWa"
	rhomTestnet = "trh1qw508d6qejxtdg4y5r3zarvary0c5xw7ku9f85v"
)

func newTestClassifier() *Classifier {
	return NewClassifier(chains.DefaultRegistry(), zap.NewNop())
}

func TestExtractAddress(t *testing.T) {
	c := newTestClassifier()

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"bare", btcLivenet, btcLivenet},
		{"bitcoin scheme", "bitcoin:" + btcLivenet, btcLivenet},
		{"upper-case scheme", "BitCoin:" + btcLivenet, btcLivenet},
		{"query stripped", "bitcoin:" + btcLivenet + "?amount=1&label=x", btcLivenet},
		{"cashaddr scheme", "bitcoincash:" + bchLivenet, bchLivenet},
		{"bchtest scheme", "bchtest:" + bchTestnet, bchTestnet},
		{"rhombus scheme", "RHOMBUS:" + rhomLivenet, rhomLivenet},
		{"unknown scheme kept", "litecoin:abc", "litecoin:abc"},
		{"surrounding spaces", "  " + btcLivenet + "  ", btcLivenet},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.ExtractAddress(tc.input))
		})
	}
}

func TestClassify(t *testing.T) {
	c := newTestClassifier()

	testCases := []struct {
		name    string
		input   string
		chain   entity.ChainID
		network entity.NetworkID
		valid   bool
	}{
		{"btc livenet", btcLivenet, entity.ChainBTC, entity.NetworkLivenet, true},
		{"btc testnet", btcTestnet, entity.ChainBTC, entity.NetworkTestnet, true},
		{"btc bech32", btcBech32, entity.ChainBTC, entity.NetworkLivenet, true},
		{"btc uri", "bitcoin:" + btcLivenet + "?amount=0.1", entity.ChainBTC, entity.NetworkLivenet, true},
		{"bch bare", bchLivenet, entity.ChainBCH, entity.NetworkLivenet, true},
		{"bch uri", "bitcoincash:" + bchLivenet + "?amount=2", entity.ChainBCH, entity.NetworkLivenet, true},
		{"bch testnet uri", "bchtest:" + bchTestnet, entity.ChainBCH, entity.NetworkTestnet, true},
		{"rhom livenet", rhomLivenet, entity.ChainRHOM, entity.NetworkLivenet, true},
		{"rhom testnet uri", "rhombus:" + rhomTestnet, entity.ChainRHOM, entity.NetworkTestnet, true},
		{"uri with bad query falls back to address", "bitcoin:" + btcLivenet + "?amount=abc", entity.ChainBTC, entity.NetworkLivenet, true},
		{"mismatched scheme still classifies address", "rhombus:" + btcLivenet, entity.ChainBTC, entity.NetworkLivenet, true},
		{"garbage", "hello world", "", "", false},
		{"empty", "", "", "", false},
		{"scheme only", "bitcoin:", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolved, ok := c.Resolve(tc.input)
			assert.Equal(t, tc.valid, ok)
			assert.Equal(t, tc.chain, resolved.Chain)
			assert.Equal(t, tc.network, resolved.Network)

			chain, ok := c.Classify(tc.input)
			assert.Equal(t, tc.valid, ok)
			assert.Equal(t, tc.chain, chain)
			assert.Equal(t, ok, c.IsValid(tc.input))
		})
	}
}

func TestClassifySchemeAndQueryInvariance(t *testing.T) {
	c := newTestClassifier()
	bare := []string{btcLivenet, btcTestnet, btcBech32, bchLivenet, bchTestnet, rhomLivenet, rhomTestnet, "junk"}
	schemes := []string{"", "bitcoin:", "bitcoincash:", "bchtest:", "rhombus:", "BITCOIN:"}
	queries := []string{"", "?amount=1", "?label=a%20b&message=x"}

	for _, addr := range bare {
		wantChain, wantOK := c.Classify(addr)
		for _, scheme := range schemes {
			for _, query := range queries {
				input := scheme + addr + query
				chain, ok := c.Classify(input)
				assert.Equal(t, wantOK, ok, input)
				assert.Equal(t, wantChain, chain, input)
				assert.Equal(t, ok, c.IsValid(input), input)
			}
		}
	}
}

func TestNetworkOf(t *testing.T) {
	c := newTestClassifier()

	testCases := []struct {
		name   string
		input  string
		want   entity.NetworkID
		wantOK bool
	}{
		{"btc livenet", btcLivenet, entity.NetworkLivenet, true},
		{"btc testnet uri", "bitcoin:" + btcTestnet + "?amount=1", entity.NetworkTestnet, true},
		{"bch testnet", "bchtest:" + bchTestnet, entity.NetworkTestnet, true},
		{"rhom testnet", rhomTestnet, entity.NetworkTestnet, true},
		{"unknown", "nope", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := c.NetworkOf(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// fakeChain accepts a fixed set of addresses on livenet.
type fakeChain struct {
	id      entity.ChainID
	accepts map[string]bool
	panics  bool
}

func (f *fakeChain) ID() entity.ChainID    { return f.id }
func (f *fakeChain) URISchemes() []string { return []string{string(f.id)} }

func (f *fakeChain) ValidateAddress(addr string, network entity.NetworkID) bool {
	if f.panics {
		panic("boom")
	}
	return network == entity.NetworkLivenet && f.accepts[addr]
}

func (f *fakeChain) ParseURI(string) (string, bool) { return "", false }

func (f *fakeChain) ResolveNetwork(addr string) (entity.NetworkID, bool) {
	if f.ValidateAddress(addr, entity.NetworkLivenet) {
		return entity.NetworkLivenet, true
	}
	return "", false
}

func TestClassifyPriorityOrder(t *testing.T) {
	first := &fakeChain{id: "first", accepts: map[string]bool{"shared": true}}
	second := &fakeChain{id: "second", accepts: map[string]bool{"shared": true, "only-second": true}}

	c := NewClassifier(chains.NewRegistry(first, second), zap.NewNop())
	chain, ok := c.Classify("shared")
	assert.True(t, ok)
	assert.Equal(t, entity.ChainID("first"), chain)

	chain, ok = c.Classify("only-second")
	assert.True(t, ok)
	assert.Equal(t, entity.ChainID("second"), chain)

	reversed := NewClassifier(chains.NewRegistry(second, first), zap.NewNop())
	chain, _ = reversed.Classify("shared")
	assert.Equal(t, entity.ChainID("second"), chain)
}

func TestClassifyPanickingCapabilityIsRejection(t *testing.T) {
	broken := &fakeChain{id: "broken", panics: true}
	fine := &fakeChain{id: "fine", accepts: map[string]bool{"addr": true}}

	c := NewClassifier(chains.NewRegistry([]service.ChainCapability{broken, fine}...), zap.NewNop())
	chain, ok := c.Classify("addr")
	assert.True(t, ok)
	assert.Equal(t, entity.ChainID("fine"), chain)

	network, ok := c.NetworkOf("addr")
	assert.True(t, ok)
	assert.Equal(t, entity.NetworkLivenet, network)
}
