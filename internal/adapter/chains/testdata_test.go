package chains

// Addresses shared by the chain tests. All encode the same hash160
// (751e76e8199196d454941c45d1b3a323f1433bd6) under each chain's parameters.
const (
	btcLivenetP2PKH  = "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"
	btcLivenetP2SH   = "3CNHUhP3uyB9EUtRLsmvFUmvGdjGdkTxJw"
	btcLivenetBech32 = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
	btcTestnetP2PKH  = "mrCDrCybB6J1vRfbwM5hemdJz73FwDBC8r"
	btcTestnetBech32 = "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx"

	// Witness v1 (bech32m), not understood by the address decoder.
	btcLivenetTaproot = "bc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vqzk5jj0"

	bchLivenetCashAddr = "bitcoincash:qp63uahgrxged4z5jswyt5dn5v3lzsem6cy4spdc2h"
	bchLivenetBare     = "qp63uahgrxged4z5jswyt5dn5v3lzsem6cy4spdc2h"
	bchTestnetCashAddr = "bchtest:qp63uahgrxged4z5jswyt5dn5v3lzsem6cq85x00dt"

	rhomLivenetP2PKH  = "RjJ4cn5Bg58D2khGiNRmQW1yWtA6Py9kWa"
	rhomLivenetP2SH   = "rGurgQFkz5PevCCZCxkCz9cxuesdivy2QK"
	rhomLivenetBech32 = "rh1qw508d6qejxtdg4y5r3zarvary0c5xw7kxrmwg8"
	rhomTestnetP2PKH  = "tgwUb43VFAAupo35MUk7tuFgggRJ2uYQHn"
	rhomTestnetBech32 = "trh1qw508d6qejxtdg4y5r3zarvary0c5xw7ku9f85v"
)
