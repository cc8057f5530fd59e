package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainkit/internal/domain/entity"
	"chainkit/internal/domain/service"
)

func TestValidateAddress(t *testing.T) {
	btc, bch, rhom := NewBitcoin(), NewBitcoinCash(), NewRhombus()

	testCases := []struct {
		name    string
		chain   service.ChainCapability
		addr    string
		network entity.NetworkID
		want    bool
	}{
		{"btc livenet p2pkh", btc, btcLivenetP2PKH, entity.NetworkLivenet, true},
		{"btc livenet p2sh", btc, btcLivenetP2SH, entity.NetworkLivenet, true},
		{"btc livenet bech32", btc, btcLivenetBech32, entity.NetworkLivenet, true},
		{"btc testnet p2pkh", btc, btcTestnetP2PKH, entity.NetworkTestnet, true},
		{"btc testnet bech32", btc, btcTestnetBech32, entity.NetworkTestnet, true},
		{"btc livenet address on testnet", btc, btcLivenetP2PKH, entity.NetworkTestnet, false},
		{"btc testnet bech32 on livenet", btc, btcTestnetBech32, entity.NetworkLivenet, false},
		{"btc rejects rhombus", btc, rhomLivenetP2PKH, entity.NetworkLivenet, false},
		{"btc rejects cashaddr", btc, bchLivenetBare, entity.NetworkLivenet, false},
		{"btc rejects rhombus bech32", btc, rhomLivenetBech32, entity.NetworkLivenet, false},
		{"btc taproot unsupported", btc, btcLivenetTaproot, entity.NetworkLivenet, false},
		{"btc bad checksum", btc, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMJ", entity.NetworkLivenet, false},
		{"btc empty", btc, "", entity.NetworkLivenet, false},
		{"btc unknown network", btc, btcLivenetP2PKH, entity.NetworkID("regtest"), false},

		{"bch livenet prefixed", bch, bchLivenetCashAddr, entity.NetworkLivenet, true},
		{"bch livenet bare", bch, bchLivenetBare, entity.NetworkLivenet, true},
		{"bch testnet prefixed", bch, bchTestnetCashAddr, entity.NetworkTestnet, true},
		{"bch livenet on testnet", bch, bchLivenetBare, entity.NetworkTestnet, false},
		{"bch rejects rhombus", bch, rhomLivenetP2PKH, entity.NetworkLivenet, false},
		{"bch garbage", bch, "not-an-address", entity.NetworkLivenet, false},

		{"rhom livenet p2pkh", rhom, rhomLivenetP2PKH, entity.NetworkLivenet, true},
		{"rhom livenet p2sh", rhom, rhomLivenetP2SH, entity.NetworkLivenet, true},
		{"rhom livenet bech32", rhom, rhomLivenetBech32, entity.NetworkLivenet, true},
		{"rhom testnet p2pkh", rhom, rhomTestnetP2PKH, entity.NetworkTestnet, true},
		{"rhom testnet bech32", rhom, rhomTestnetBech32, entity.NetworkTestnet, true},
		{"rhom rejects btc", rhom, btcLivenetP2PKH, entity.NetworkLivenet, false},
		{"rhom rejects btc bech32", rhom, btcLivenetBech32, entity.NetworkLivenet, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.chain.ValidateAddress(tc.addr, tc.network))
		})
	}
}

func TestResolveNetwork(t *testing.T) {
	testCases := []struct {
		name   string
		chain  service.ChainCapability
		addr   string
		want   entity.NetworkID
		wantOK bool
	}{
		{"btc livenet", NewBitcoin(), btcLivenetP2PKH, entity.NetworkLivenet, true},
		{"btc testnet", NewBitcoin(), btcTestnetP2PKH, entity.NetworkTestnet, true},
		{"bch testnet", NewBitcoinCash(), bchTestnetCashAddr, entity.NetworkTestnet, true},
		{"rhom testnet", NewRhombus(), rhomTestnetBech32, entity.NetworkTestnet, true},
		{"invalid", NewRhombus(), "xyz", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.chain.ResolveNetwork(tc.addr)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseURI(t *testing.T) {
	testCases := []struct {
		name   string
		chain  service.ChainCapability
		uri    string
		want   string
		wantOK bool
	}{
		{"bitcoin uri", NewBitcoin(), "bitcoin:" + btcLivenetP2PKH, btcLivenetP2PKH, true},
		{"bitcoin uri with amount", NewBitcoin(), "bitcoin:" + btcLivenetP2PKH + "?amount=0.5&label=shop", btcLivenetP2PKH, true},
		{"bitcoin uri upper-case scheme", NewBitcoin(), "BITCOIN:" + btcLivenetP2PKH, btcLivenetP2PKH, true},
		{"bitcoin uri negative amount", NewBitcoin(), "bitcoin:" + btcLivenetP2PKH + "?amount=-1", "", false},
		{"bitcoin uri bad amount", NewBitcoin(), "bitcoin:" + btcLivenetP2PKH + "?amount=abc", "", false},
		{"bitcoin uri required param", NewBitcoin(), "bitcoin:" + btcLivenetP2PKH + "?req-foo=1", "", false},
		{"bitcoin uri wrong scheme", NewBitcoin(), bchLivenetCashAddr, "", false},
		{"bitcoin uri no address", NewBitcoin(), "bitcoin:?amount=1", "", false},
		{"cashaddr uri", NewBitcoinCash(), bchLivenetCashAddr + "?amount=1", bchLivenetBare, true},
		{"bchtest uri", NewBitcoinCash(), bchTestnetCashAddr, "qp63uahgrxged4z5jswyt5dn5v3lzsem6cq85x00dt", true},
		{"rhombus uri", NewRhombus(), "rhombus:" + rhomLivenetP2PKH, rhomLivenetP2PKH, true},
		{"plain address", NewRhombus(), rhomLivenetP2PKH, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.chain.ParseURI(tc.uri)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	ids := make([]entity.ChainID, 0, 3)
	for _, c := range r.Ordered() {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, entity.ChainPriority, ids)

	c, ok := r.Get(entity.ChainBCH)
	require.True(t, ok)
	assert.Equal(t, entity.ChainBCH, c.ID())

	_, ok = r.Get("doge")
	assert.False(t, ok)

	schemes := r.Schemes()
	require.Len(t, schemes, 4)
	assert.Equal(t, "bitcoincash", schemes[0])
	assert.ElementsMatch(t, []string{"bitcoin", "bitcoincash", "bchtest", "rhombus"}, schemes)
}
