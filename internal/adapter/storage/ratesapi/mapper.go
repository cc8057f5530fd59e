package ratesapi

import (
	"fmt"
	"math"

	dto "chainkit/internal/adapter/storage/ratesapi/dto"
	"chainkit/internal/domain"
	"chainkit/internal/domain/entity"

	"go.uber.org/zap"
)

// toDomainRates converts raw rate entries to domain rates, keeping source order.
func toDomainRates(raw []dto.RateRaw, logger *zap.Logger) []entity.Rate {
	if raw == nil {
		return nil
	}
	rates := make([]entity.Rate, 0, len(raw))
	for _, r := range raw {
		code := entity.NormalizeCode(r.Code)
		if code == "" {
			if logger != nil {
				logger.Warn("Skipping rate entry without code", zap.String("name", r.Name))
			}
			continue
		}
		rates = append(rates, entity.Rate{Code: code, Name: r.Name, Rate: r.Rate})
	}
	return rates
}

// toAltcoinPrice extracts the price of the first ticker entry.
func toAltcoinPrice(raw []dto.TickerRaw) (float64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("%w: empty ticker list", domain.ErrMalformedRateResponse)
	}
	price := float64(raw[0].PriceBTC)
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("%w: unusable price_btc %v", domain.ErrMalformedRateResponse, price)
	}
	return price, nil
}
