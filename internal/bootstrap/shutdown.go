package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/RouletteHouse_Go/internal/event"
	"github.com/osse101/RouletteHouse_Go/internal/server"
	"github.com/osse101/RouletteHouse_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	OracleWorker       *worker.OracleWorker
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down components in the correct order:
// 1. HTTP server (stop accepting new spins)
// 2. Oracle worker (deliver or fail every in-flight randomness request)
// 3. Event publisher (flush events published by those last resolutions)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.OracleWorker != nil {
		slog.Info(LogMsgShuttingDownOracle, "in_flight", components.OracleWorker.InFlight())
		if err := components.OracleWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgOracleShutdownFailed, "error", err)
		}
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
