package entity

// NetworkID identifies which network of a chain an address belongs to.
type NetworkID string

// Constants for known networks.
const (
	NetworkLivenet NetworkID = "livenet"
	NetworkTestnet NetworkID = "testnet"
)

// Networks lists the networks in the order they are tried during validation.
var Networks = []NetworkID{NetworkLivenet, NetworkTestnet}

// ParseNetworkID converts a raw string to a known NetworkID.
// "mainnet" is accepted as an alias of livenet.
func ParseNetworkID(raw string) (NetworkID, bool) {
	switch raw {
	case "livenet", "mainnet":
		return NetworkLivenet, true
	case "testnet":
		return NetworkTestnet, true
	default:
		return "", false
	}
}

// Other returns the opposite network.
func (n NetworkID) Other() NetworkID {
	if n == NetworkLivenet {
		return NetworkTestnet
	}
	return NetworkLivenet
}

// ChainID identifies a supported chain.
type ChainID string

// Constants for supported chains.
const (
	ChainBTC  ChainID = "btc"
	ChainBCH  ChainID = "bch"
	ChainRHOM ChainID = "rhom"
)

// ChainPriority is the fixed disambiguation order. Addresses accepted by more
// than one chain are attributed to the first chain in this list.
var ChainPriority = []ChainID{ChainBTC, ChainBCH, ChainRHOM}

// ParseChainID converts a raw string to a supported ChainID.
func ParseChainID(raw string) (ChainID, bool) {
	for _, id := range ChainPriority {
		if string(id) == raw {
			return id, true
		}
	}
	return "", false
}

// String returns the string representation of the ChainID.
func (c ChainID) String() string {
	return string(c)
}

// ClassifiedAddress is the result of resolving an input string to a chain and network.
type ClassifiedAddress struct {
	Chain   ChainID   `json:"chain"`
	Network NetworkID `json:"network"`
	Address string    `json:"address"`
}

// PaymentDetails is a pre-resolved payment-protocol descriptor.
type PaymentDetails struct {
	Chain   ChainID   `json:"coin"`
	Network NetworkID `json:"network"`
}
