package application

import (
	"context"
	"math"

	"chainkit/internal/application/port"
	"chainkit/internal/domain/entity"
)

// SatoshisPerCoin is the smallest-unit scale shared by every supported chain.
const SatoshisPerCoin = 1e8

// Compile-time check
var _ port.FiatConverter = (*FiatConverter)(nil)

// FiatConverter converts amounts using the installed rate tables.
type FiatConverter struct {
	rates port.RateService
}

// NewFiatConverter creates a converter reading from rates.
func NewFiatConverter(rates port.RateService) *FiatConverter {
	return &FiatConverter{rates: rates}
}

// ToFiat converts satoshis to the fiat currency code. It reports false when the
// chain has no table or the code is unknown.
func (c *FiatConverter) ToFiat(ctx context.Context, satoshis int64, code string, chain entity.ChainID) (float64, bool) {
	rate, ok := c.rates.Rate(ctx, chain, code)
	if !ok {
		return 0, false
	}
	return float64(satoshis) / SatoshisPerCoin * rate, true
}

// FromFiat converts a fiat amount to satoshis, rounded to the nearest unit.
func (c *FiatConverter) FromFiat(ctx context.Context, amount float64, code string, chain entity.ChainID) (int64, bool) {
	rate, ok := c.rates.Rate(ctx, chain, code)
	if !ok || rate == 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	satoshis := math.Round(amount / rate * SatoshisPerCoin)
	if math.IsNaN(satoshis) || math.Abs(satoshis) > math.MaxInt64 {
		return 0, false
	}
	return int64(satoshis), true
}
