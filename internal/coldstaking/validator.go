// Package coldstaking validates cold-staking pool credentials.
package coldstaking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/btcsuite/btcutil/hdkeychain"

	"chainkit/internal/domain"
	"chainkit/internal/domain/entity"
)

// Default prefix tables of the staking chain.
var (
	DefaultExtendedKeyPrefixes = Prefixes{Livenet: "prom", Testnet: "RRoM"}
	DefaultBech32Prefixes      = Prefixes{Livenet: "rcs", Testnet: "tpcs"}
)

// Prefixes holds the livenet and testnet prefix of one credential kind.
type Prefixes struct {
	Livenet string
	Testnet string
}

func (p Prefixes) forNetwork(network entity.NetworkID) string {
	if network == entity.NetworkTestnet {
		return p.Testnet
	}
	return p.Livenet
}

func (p Prefixes) validate() error {
	if p.Livenet == "" || p.Testnet == "" {
		return errors.New("both network prefixes must be set")
	}
	if strings.HasPrefix(p.Livenet, p.Testnet) || strings.HasPrefix(p.Testnet, p.Livenet) {
		return fmt.Errorf("network prefixes %q and %q overlap", p.Livenet, p.Testnet)
	}
	return nil
}

// Option customizes a Validator.
type Option func(*Validator)

// WithExtendedKeyPrefixes overrides the base58 prefixes of extended public keys.
func WithExtendedKeyPrefixes(p Prefixes) Option {
	return func(v *Validator) {
		v.extendedKey = p
	}
}

// WithBech32Prefixes overrides the human-readable parts of staking addresses.
// Bech32 prefixes are compared in lower case.
func WithBech32Prefixes(p Prefixes) Option {
	return func(v *Validator) {
		v.bech32 = Prefixes{Livenet: strings.ToLower(p.Livenet), Testnet: strings.ToLower(p.Testnet)}
	}
}

// Validator checks credentials against the prefixes of a single network.
// Its configuration is fixed at construction; instances share nothing.
type Validator struct {
	network     entity.NetworkID
	extendedKey Prefixes
	bech32      Prefixes
}

// NewValidator creates a validator bound to network.
func NewValidator(network entity.NetworkID, opts ...Option) (*Validator, error) {
	if network != entity.NetworkLivenet && network != entity.NetworkTestnet {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedNetwork, network)
	}

	v := &Validator{
		network:     network,
		extendedKey: DefaultExtendedKeyPrefixes,
		bech32:      DefaultBech32Prefixes,
	}
	for _, opt := range opts {
		opt(v)
	}

	if err := v.extendedKey.validate(); err != nil {
		return nil, fmt.Errorf("extended key prefixes: %w", err)
	}
	if err := v.bech32.validate(); err != nil {
		return nil, fmt.Errorf("bech32 prefixes: %w", err)
	}
	return v, nil
}

// Network returns the network the validator is bound to.
func (v *Validator) Network() entity.NetworkID {
	return v.network
}

// Validate accepts raw as a pool extended public key or a bech32 staking address.
// A structurally valid extended key is never re-read as bech32, even when its
// prefix check fails.
func (v *Validator) Validate(raw string) (entity.ColdStakingCredential, error) {
	raw = strings.TrimSpace(raw)

	// Private keys are not pool credentials and fall through to bech32.
	if key, err := hdkeychain.NewKeyFromString(raw); err == nil && !key.IsPrivate() {
		return v.checkPrefix(entity.CredentialExtendedKey, raw, v.extendedKey, func(prefix string) bool {
			return strings.HasPrefix(raw, prefix)
		})
	}

	hrp, _, err := bech32.Decode(raw)
	if err != nil {
		return entity.ColdStakingCredential{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)
	}
	return v.checkPrefix(entity.CredentialBech32Address, raw, v.bech32, func(prefix string) bool {
		return hrp == prefix
	})
}

func (v *Validator) checkPrefix(kind entity.CredentialKind, raw string, table Prefixes, has func(string) bool) (entity.ColdStakingCredential, error) {
	own := table.forNetwork(v.network)
	other := table.forNetwork(v.network.Other())

	switch {
	case has(own):
		return entity.ColdStakingCredential{Kind: kind, Prefix: own, Network: v.network, Raw: raw}, nil
	case has(other):
		return entity.ColdStakingCredential{}, fmt.Errorf("%w: %s prefix %q belongs to %s", domain.ErrWrongNetwork, kind, other, v.network.Other())
	default:
		return entity.ColdStakingCredential{}, fmt.Errorf("%w: %s is neither %q nor %q", domain.ErrWrongPrefix, kind, table.Livenet, table.Testnet)
	}
}

// Reason maps a validation error to its reason code. It returns an empty
// string for nil.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrWrongNetwork):
		return domain.ErrWrongNetwork.Error()
	case errors.Is(err, domain.ErrWrongPrefix):
		return domain.ErrWrongPrefix.Error()
	default:
		return domain.ErrInvalidCredential.Error()
	}
}
