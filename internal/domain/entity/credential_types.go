package entity

// CredentialKind distinguishes the two accepted cold-staking credential encodings.
type CredentialKind string

const (
	CredentialExtendedKey   CredentialKind = "extended_key"
	CredentialBech32Address CredentialKind = "bech32_address"
)

// ColdStakingCredential is a validated pool public key or staking address.
type ColdStakingCredential struct {
	Kind    CredentialKind `json:"kind"`
	Prefix  string         `json:"prefix"`
	Network NetworkID      `json:"network"`
	Raw     string         `json:"raw"`
}
