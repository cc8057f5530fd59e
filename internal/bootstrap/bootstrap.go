// Package bootstrap wires the core components shared by the API server and the CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"chainkit/internal/adapter/chains"
	handler "chainkit/internal/adapter/handler/http"
	"chainkit/internal/adapter/storage/memory"
	"chainkit/internal/adapter/storage/ratesapi"
	"chainkit/internal/adapter/stream"
	"chainkit/internal/address"
	"chainkit/internal/application"
	"chainkit/internal/application/port"
	"chainkit/internal/coldstaking"
	"chainkit/internal/config"
	"chainkit/internal/domain/entity"
	domainRepo "chainkit/internal/domain/repository"
	"chainkit/internal/monitoring"
)

// App holds the wired components.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Registry   *chains.Registry
	Classifier *address.Classifier
	Rates      port.RateService
	Converter  port.FiatConverter
	Validator  *coldstaking.Validator
	Metrics    *monitoring.Metrics
	Stream     *stream.Hub
}

// New wires the application against the configured remote rate services.
// ctx bounds background work and every rate fetch.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	return NewWithSource(ctx, cfg, logger, ratesapi.NewRepository(cfg.Rates, logger))
}

// NewWithSource wires the application against source.
func NewWithSource(ctx context.Context, cfg *config.Config, logger *zap.Logger, source domainRepo.RateSource) (*App, error) {
	logger.Info("Initializing dependencies...")

	validator, err := NewValidator(cfg.ColdStaking)
	if err != nil {
		return nil, err
	}

	registry := chains.DefaultRegistry()
	metrics := monitoring.NewMetrics()
	cacheRepo := memory.NewCacheRepository(logger)
	rates := application.NewRateService(ctx, source, cacheRepo, metrics, logger, cfg.Rates)

	hub := stream.NewHub(logger)
	rates.OnInstall(hub.Publish)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Registry:   registry,
		Classifier: address.NewClassifier(registry, logger),
		Rates:      rates,
		Converter:  application.NewFiatConverter(rates),
		Validator:  validator,
		Metrics:    metrics,
		Stream:     hub,
	}, nil
}

// NewValidator builds the cold-staking validator from its config section.
func NewValidator(cfg config.ColdStakingConfig) (*coldstaking.Validator, error) {
	network, ok := entity.ParseNetworkID(cfg.Network)
	if !ok {
		return nil, fmt.Errorf("coldstaking.network %q: must be livenet or testnet", cfg.Network)
	}

	var opts []coldstaking.Option
	if cfg.ExtendedKeyLivenetPrefix != "" || cfg.ExtendedKeyTestnetPrefix != "" {
		opts = append(opts, coldstaking.WithExtendedKeyPrefixes(coldstaking.Prefixes{
			Livenet: cfg.ExtendedKeyLivenetPrefix,
			Testnet: cfg.ExtendedKeyTestnetPrefix,
		}))
	}
	if cfg.Bech32LivenetPrefix != "" || cfg.Bech32TestnetPrefix != "" {
		opts = append(opts, coldstaking.WithBech32Prefixes(coldstaking.Prefixes{
			Livenet: cfg.Bech32LivenetPrefix,
			Testnet: cfg.Bech32TestnetPrefix,
		}))
	}

	validator, err := coldstaking.NewValidator(network, opts...)
	if err != nil {
		return nil, fmt.Errorf("cold-staking validator: %w", err)
	}
	return validator, nil
}

// HTTPHandler builds the routed API handler wrapped in request logging.
func (a *App) HTTPHandler() fasthttp.RequestHandler {
	h := handler.NewHandler(
		a.Classifier,
		a.Rates,
		a.Converter,
		a.Validator,
		a.Metrics,
		a.Config.Rates.GetRequestTimeout(),
		a.Logger,
	)

	var metricsHandler fasthttp.RequestHandler
	if a.Config.Metrics.Enabled {
		metricsHandler = fasthttpadaptor.NewFastHTTPHandler(a.Metrics.Handler())
	}

	a.Logger.Info("Setting up HTTP router...")
	r := router.New()
	handler.RegisterRoutes(r, h, a.Stream.ServeWS, metricsHandler, a.Config.Metrics.Path, a.Logger)
	return handler.LoggingMiddleware(a.Logger, r.Handler)
}
