package metrics

import (
	"context"
	"time"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/event"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct {
	decimals int32
}

// NewEventMetricsCollector creates a new event metrics collector. Amounts
// are recorded in whole units of an asset with the given decimals.
func NewEventMetricsCollector(decimals int32) *EventMetricsCollector {
	return &EventMetricsCollector{decimals: decimals}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.SettlementAccepted,
		event.SettlementResolved,
		event.SettlementFailed,
		event.SettlementAborted,
		event.TokenDeposited,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.SettlementAccepted:
		p, err := event.DecodePayload[domain.SettlementAcceptedPayload](evt)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		SpinsTotal.Add(float64(p.Spins))
		BetsTotal.Add(float64(p.Bets))
		StakeTotal.WithLabelValues(p.Asset).Add(e.units(p.Stake))

	case event.SettlementResolved:
		p, err := event.DecodePayload[domain.SettlementResolvedPayload](evt)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		SettlementsTotal.WithLabelValues(string(domain.SettlementStateResolved)).Inc()
		WinsTotal.Add(float64(p.Wins))
		PayoutTotal.WithLabelValues(p.Asset).Add(e.units(p.Payout))
		SettlementLatency.Observe((time.Duration(p.LatencyMs) * time.Millisecond).Seconds())

	case event.SettlementFailed:
		SettlementsTotal.WithLabelValues(string(domain.SettlementStateFailed)).Inc()

	case event.SettlementAborted:
		SettlementsTotal.WithLabelValues(string(domain.SettlementStateAborted)).Inc()

	case event.TokenDeposited:
		p, err := event.DecodePayload[domain.TokenDepositedPayload](evt)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		TokenDeposits.WithLabelValues(p.TokenID).Add(e.units(p.Amount))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) units(a domain.Amount) float64 {
	return a.Decimal(e.decimals).InexactFloat64()
}
