package chains

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// RhombusMainNetParams defines the address encoding parameters of the staking
// altcoin's production network. Only the fields btcutil and hdkeychain read
// are populated.
var RhombusMainNetParams = chaincfg.Params{
	Name: "rhombus-livenet",
	Net:  0xd9b4bef9 ^ 0x52484f4d, // "RHOM" folded into the bitcoin magic

	PubKeyHashAddrID: 0x3d, // R...
	ScriptHashAddrID: 0x7a, // r...
	PrivateKeyID:     0xbd,

	Bech32HRPSegwit: "rh",

	// Serialized extended keys start with "prom".
	HDPrivateKeyID: [4]byte{0x03, 0xe3, 0x0a, 0x70},
	HDPublicKeyID:  [4]byte{0x03, 0xe3, 0x0b, 0xd0},

	HDCoinType: 2088,
}

// RhombusTestNetParams defines the address encoding parameters of the staking
// altcoin's test network.
var RhombusTestNetParams = chaincfg.Params{
	Name: "rhombus-testnet",
	Net:  0x0709110b ^ 0x52484f4d,

	PubKeyHashAddrID: 0x80, // t...
	ScriptHashAddrID: 0x13, // 8...
	PrivateKeyID:     0xef,

	Bech32HRPSegwit: "trh",

	// Serialized extended keys start with "RRoM".
	HDPrivateKeyID: [4]byte{0x01, 0xfb, 0xe0, 0x60},
	HDPublicKeyID:  [4]byte{0x01, 0xfb, 0xe1, 0xa8},

	HDCoinType: 1,
}

func init() {
	// btcutil only recognizes segwit prefixes of registered networks.
	for _, params := range []*chaincfg.Params{&RhombusMainNetParams, &RhombusTestNetParams} {
		if err := chaincfg.Register(params); err != nil {
			panic(fmt.Sprintf("failed to register %s params: %v", params.Name, err))
		}
	}
}
