package address

import "chainkit/internal/domain/entity"

// Matches reports whether input is a valid address of chain on network.
func (c *Classifier) Matches(chain entity.ChainID, network entity.NetworkID, input string) bool {
	if !c.IsValid(input) {
		return false
	}
	normalized := c.ExtractAddress(input)

	got, ok := c.Classify(normalized)
	if !ok || got != chain {
		return false
	}
	gotNetwork, ok := c.NetworkOf(normalized)
	return ok && gotNetwork == network
}

// MatchesPaymentDetails compares an already resolved payment descriptor with
// chain and network. The descriptor's address is not re-validated.
func (c *Classifier) MatchesPaymentDetails(chain entity.ChainID, network entity.NetworkID, details entity.PaymentDetails) bool {
	return details.Chain == chain && details.Network == network
}
