package repository

import (
	"context"

	"chainkit/internal/domain/entity"
)

// CacheRepository defines the interface for holding the current rate table of each chain.
type CacheRepository interface {
	// GetRateTable retrieves the installed table for a chain, returning found status.
	GetRateTable(ctx context.Context, chain entity.ChainID) (*entity.RateTable, bool, error)

	// SetRateTable publishes a table for a chain, replacing any previous one as a whole.
	SetRateTable(ctx context.Context, chain entity.ChainID, table *entity.RateTable) error
}
