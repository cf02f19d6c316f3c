package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"

	"github.com/osse101/RouletteHouse_Go/internal/bootstrap"
	"github.com/osse101/RouletteHouse_Go/internal/config"
	"github.com/osse101/RouletteHouse_Go/internal/database"
	"github.com/osse101/RouletteHouse_Go/internal/handler"
	"github.com/osse101/RouletteHouse_Go/internal/payment"
	"github.com/osse101/RouletteHouse_Go/internal/server"
	"github.com/osse101/RouletteHouse_Go/internal/settlement"
	"github.com/osse101/RouletteHouse_Go/internal/worker"
)

const shutdownTimeout = 30 * time.Second

// @title Roulette House API
// @version 1.0
// @description Roulette settlement engine with an asynchronous randomness oracle.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Warn("Environment check failed", "error", err)
	}
	for _, warning := range warnings {
		slog.Warn("Environment check", "warning", warning)
	}

	if cfg.Version != "" && handler.Version == "dev" {
		handler.Version = cfg.Version
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		return err
	}

	clock := quartz.NewReal()

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg, clock)
	if err != nil {
		return err
	}
	if err := bootstrap.RegisterEventHandlers(eventBus, cfg.AssetDecimals); err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	signer, err := bootstrap.NewSigner(cfg, clock)
	if err != nil {
		return err
	}
	oracleWorker := worker.NewOracleWorker(signer, clock, cfg.OracleWorkers, cfg.OracleQueueSize)
	oracleWorker.Start()

	paymentService := payment.NewService(repos.Accounts, publisher, clock, cfg.SupportedTokens)
	settlementService := settlement.NewService(repos.Settlement, oracleWorker, paymentService, publisher, clock, settlement.Config{
		MaxCallbackBudget: cfg.MaxCallbackBudget,
		SupportedTokens:   cfg.SupportedTokens,
		ResultCacheSize:   cfg.ResultCacheSize,
		ResultCacheTTL:    cfg.ResultCacheTTL,
	})

	if err := bootstrap.InitializeHouse(ctx, repos.Settlement, settlementService, cfg); err != nil {
		return err
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		AssetDecimals:  cfg.AssetDecimals,
		Clock:          clock,
		DBPool:         dbPool,
		Settlements:    settlementService,
		Payments:       paymentService,
		Receiver:       payment.NewTokenReceiver(paymentService, settlementService),
		Oracle:         oracleWorker,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		OracleWorker:       oracleWorker,
		ResilientPublisher: publisher,
	})
	return nil
}
