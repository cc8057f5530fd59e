package ratesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dto "chainkit/internal/adapter/storage/ratesapi/dto"
	"chainkit/internal/config"
	"chainkit/internal/domain"
	"chainkit/internal/domain/entity"
	domainRepo "chainkit/internal/domain/repository"
	"chainkit/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.RateSource = (*Repository)(nil)

const defaultRequestTimeout = 15 * time.Second

// Repository implements RateSource over the remote rate services.
type Repository struct {
	client    *fasthttp.Client
	urls      map[entity.ChainID]string
	tickerURL string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewRepository creates a new rate source. It configures the HTTP client and stores the endpoints.
func NewRepository(cfg config.RatesConfig, logger *zap.Logger) *Repository {
	timeout := cfg.GetRequestTimeout()
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Repository{
		client: &fasthttp.Client{Name: "chainkit"},
		urls: map[entity.ChainID]string{
			entity.ChainBTC: cfg.BTCURL,
			entity.ChainBCH: cfg.BCHURL,
		},
		tickerURL: cfg.RHOMURL,
		timeout:   timeout,
		logger:    logger.Named("RatesStorage"),
	}
}

// FetchRates fetches the fiat rate list of the primary or forked chain.
func (r *Repository) FetchRates(ctx context.Context, chain entity.ChainID) ([]entity.Rate, error) {
	url, ok := r.urls[chain]
	if !ok || url == "" {
		return nil, fmt.Errorf("%w: no rate list for %q", domain.ErrUnsupportedChain, chain)
	}

	body, err := r.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var raw []dto.RateRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		r.logger.Error("Failed to unmarshal rate list",
			zap.Error(err), zap.ByteString("bodySample", body[:min(1024, len(body))]),
		)
		return nil, fmt.Errorf("%w: %w: failed to parse rate list: %v",
			apperrors.ErrExternalServiceFailure, domain.ErrMalformedRateResponse, err,
		)
	}

	rates := toDomainRates(raw, r.logger)
	r.logger.Info("Successfully fetched rate list",
		zap.String("chain", chain.String()), zap.Int("count", len(rates)),
	)
	return rates, nil
}

// FetchAltcoinPrice fetches the altcoin price expressed in the primary chain's unit.
func (r *Repository) FetchAltcoinPrice(ctx context.Context) (float64, error) {
	body, err := r.get(ctx, r.tickerURL)
	if err != nil {
		return 0, err
	}

	var raw []dto.TickerRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		r.logger.Error("Failed to unmarshal ticker",
			zap.Error(err), zap.ByteString("bodySample", body[:min(1024, len(body))]),
		)
		return 0, fmt.Errorf("%w: %w: failed to parse ticker: %v",
			apperrors.ErrExternalServiceFailure, domain.ErrMalformedRateResponse, err,
		)
	}

	price, err := toAltcoinPrice(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrExternalServiceFailure, err)
	}
	r.logger.Debug("Fetched altcoin price", zap.Float64("priceBTC", price))
	return price, nil
}

// get performs a GET bounded by the configured timeout and the context deadline.
func (r *Repository) get(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTimeout, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	timeout := r.timeout
	if deadline, hasDeadline := ctx.Deadline(); hasDeadline {
		requestTimeout := time.Until(deadline)
		if requestTimeout <= 0 {
			return nil, fmt.Errorf("%w: deadline passed before request to %s", apperrors.ErrTimeout, url)
		}
		if requestTimeout < timeout {
			timeout = requestTimeout
		}
	}

	r.logger.Debug("Fetching rates", zap.String("url", url), zap.Duration("timeout", timeout))

	if err := r.client.DoTimeout(req, resp, timeout); err != nil {
		r.logger.Error("Failed to execute request to rate service", zap.String("url", url), zap.Error(err))
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, fmt.Errorf("%w: request to %s: %v", apperrors.ErrTimeout, url, err)
		}
		return nil, fmt.Errorf("%w: failed to execute request to %s: %v",
			apperrors.ErrExternalServiceFailure, url, err,
		)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		r.logger.Error(
			"Rate service returned non-OK status",
			zap.String("url", url),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("body", resp.Body()),
		)
		return nil, fmt.Errorf("%w: %s returned status %d",
			apperrors.ErrExternalServiceFailure, url, resp.StatusCode(),
		)
	}

	contentEncoding := resp.Header.Peek(fasthttp.HeaderContentEncoding)
	if bytes.EqualFold(contentEncoding, []byte("gzip")) {
		body, err := resp.BodyGunzip()
		if err != nil {
			r.logger.Error("Failed to gunzip rate response body", zap.Error(err))
			return nil, fmt.Errorf("%w: failed to decompress response: %v",
				apperrors.ErrExternalServiceFailure, err,
			)
		}
		return body, nil
	}

	// resp is released on return.
	return append([]byte(nil), resp.Body()...), nil
}
