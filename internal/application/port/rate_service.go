package port

import (
	"context"
	"time"

	"chainkit/internal/domain/entity"
)

// RateService defines the per-chain rate cache and its refresh orchestration.
type RateService interface {
	// Refresh fetches and installs the rate table of a chain. Concurrent calls for
	// the same chain share one fetch and its outcome.
	Refresh(ctx context.Context, chain entity.ChainID) error

	// RefreshAll refreshes every supported chain concurrently and joins the failures.
	RefreshAll(ctx context.Context) error

	// WhenAvailable returns immediately if the chain has a table, otherwise refreshes it once.
	WhenAvailable(ctx context.Context, chain entity.ChainID) error

	// IsAvailable reports whether a table has ever been installed for the chain.
	IsAvailable(ctx context.Context, chain entity.ChainID) bool

	// Rate returns the rate of a currency code on a chain.
	Rate(ctx context.Context, chain entity.ChainID, code string) (float64, bool)

	// Table returns the installed table of a chain.
	Table(ctx context.Context, chain entity.ChainID) (*entity.RateTable, bool)

	// ListAlternatives lists the fiat currencies of the primary chain's table.
	ListAlternatives(ctx context.Context, sort bool) []entity.Alternative

	// OnInstall registers fn to be called after every table install. The returned
	// function removes the listener.
	OnInstall(fn func(*entity.RateTable)) (unsubscribe func())
}

// FiatConverter converts between a chain's smallest unit and fiat.
type FiatConverter interface {
	ToFiat(ctx context.Context, satoshis int64, code string, chain entity.ChainID) (float64, bool)
	FromFiat(ctx context.Context, amount float64, code string, chain entity.ChainID) (int64, bool)
}

// RefreshObserver receives refresh telemetry.
type RefreshObserver interface {
	ObserveRefresh(chain entity.ChainID, elapsed time.Duration, err error)
	ObserveCoalesced(chain entity.ChainID)
	ObserveInstall(table *entity.RateTable)
}
