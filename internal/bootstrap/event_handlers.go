package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/event"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
	"github.com/osse101/RouletteHouse_Go/internal/metrics"
)

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (settlement and deposit counters)
// - Settlement audit logger (warns on failed and aborted settlements)
func RegisterEventHandlers(bus event.Bus, assetDecimals int32) error {
	metricsCollector := metrics.NewEventMetricsCollector(assetDecimals)
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	bus.Subscribe(event.SettlementFailed, logUnresolvedSettlement)
	bus.Subscribe(event.SettlementAborted, logUnresolvedSettlement)
	slog.Info(LogMsgSettlementAuditInitialized)

	return nil
}

func logUnresolvedSettlement(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.SettlementFailedPayload](evt)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Warn(LogMsgSettlementNotResolved,
		"type", evt.Type,
		"settlement_id", p.SettlementID,
		"bettor", p.Bettor,
		"stake", p.Stake,
		"reason", p.Reason)
	return nil
}
