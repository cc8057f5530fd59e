package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"chainkit/internal/bootstrap"
	"chainkit/internal/config"
	"chainkit/internal/logger"
)

func main() {
	// --- Configuration ---
	cfgPath := "configs"
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	// --- Logger ---
	appLogger, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info("Logger initialized", zap.Any("config", cfg.Logger))

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Dependency Injection (Manual) ---
	app, err := bootstrap.New(rootCtx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", zap.Error(err))
	}

	if cfg.Rates.RefreshOnStartup {
		go func() {
			if err := app.Rates.RefreshAll(rootCtx); err != nil {
				appLogger.Warn("Initial rate refresh incomplete", zap.Error(err))
			}
		}()
	}

	// --- HTTP Server ---
	server := &fasthttp.Server{
		Handler: app.HTTPHandler(),
		Name:    cfg.App.Name,
	}
	serverAddr := ":" + cfg.Server.Port

	go func() {
		<-rootCtx.Done()
		appLogger.Info("Shutting down HTTP server")
		app.Stream.Close()
		if err := server.Shutdown(); err != nil {
			appLogger.Error("HTTP server shutdown failed", zap.Error(err))
		}
	}()

	appLogger.Info("Starting HTTP server", zap.String("address", serverAddr))
	if err := server.ListenAndServe(serverAddr); err != nil {
		appLogger.Fatal("Failed to start server", zap.Error(err))
	}
	appLogger.Info("HTTP server stopped")
}
