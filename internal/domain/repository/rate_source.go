package repository

import (
	"context"

	"chainkit/internal/domain/entity"
)

// RateSource defines the interface for fetching rates from remote services.
type RateSource interface {
	// FetchRates retrieves the fiat rate list published for a chain.
	FetchRates(ctx context.Context, chain entity.ChainID) ([]entity.Rate, error)

	// FetchAltcoinPrice retrieves the altcoin price expressed in the primary chain's unit.
	FetchAltcoinPrice(ctx context.Context) (float64, error)
}
