package domain

import "errors"

var (
	// ErrUnsupportedChain means the requested chain is not one of the supported chains.
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrUnsupportedNetwork means the requested network is neither livenet nor testnet.
	ErrUnsupportedNetwork = errors.New("unsupported network")

	// ErrRatesUnavailable means no rate table has been installed yet for the chain.
	ErrRatesUnavailable = errors.New("rates not available for the chain")

	// ErrMalformedRateResponse means a rate source answered with data that could not be used.
	ErrMalformedRateResponse = errors.New("malformed rate response")

	// ErrInvalidCredential means the value is neither an extended public key nor a bech32 string.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrWrongPrefix means the credential decoded but carries an unknown prefix.
	ErrWrongPrefix = errors.New("wrong prefix")

	// ErrWrongNetwork means the credential belongs to the other network.
	ErrWrongNetwork = errors.New("wrong network")
)
