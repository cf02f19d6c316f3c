package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Settlement and token event types
const (
	SettlementAccepted Type = Type(domain.EventTypeSettlementAccepted)
	SettlementResolved Type = Type(domain.EventTypeSettlementResolved)
	SettlementFailed   Type = Type(domain.EventTypeSettlementFailed)
	SettlementAborted  Type = Type(domain.EventTypeSettlementAborted)
	TokenDeposited     Type = Type(domain.EventTypeTokenDeposited)
)

// Type-safe event constructors

// NewSettlementAcceptedEvent is published once the stake is escrowed and the
// randomness request has been handed off.
func NewSettlementAcceptedEvent(p *domain.PendingSettlement) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SettlementAccepted,
		Payload: domain.SettlementAcceptedPayload{
			SettlementID: p.ID.String(),
			Bettor:       p.Bettor,
			Asset:        p.Asset.String(),
			Stake:        p.Stake,
			Spins:        len(p.Batch),
			Bets:         p.Batch.BetCount(),
			Timestamp:    p.CreatedAt.Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyAsset: p.Asset.String(),
		},
	}
}

// NewSettlementResolvedEvent is published after the payout has been settled.
func NewSettlementResolvedEvent(r *domain.SettlementResult, bets, wins int, latency time.Duration) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SettlementResolved,
		Payload: domain.SettlementResolvedPayload{
			SettlementID: r.ID.String(),
			Bettor:       r.Bettor,
			Asset:        r.Asset.String(),
			Stake:        r.Stake,
			Payout:       r.Payout,
			Bets:         bets,
			Wins:         wins,
			LatencyMs:    latency.Milliseconds(),
			Timestamp:    r.ResolvedAt.Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyAsset: r.Asset.String(),
		},
	}
}

// NewSettlementFailedEvent covers both oracle failures and ledger aborts; the
// type tells them apart.
func NewSettlementFailedEvent(eventType Type, r *domain.SettlementResult, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: domain.SettlementFailedPayload{
			SettlementID: r.ID.String(),
			Bettor:       r.Bettor,
			Stake:        r.Stake,
			Reason:       reason,
			Timestamp:    r.ResolvedAt.Unix(),
		},
		Metadata: nil,
	}
}

// NewTokenDepositedEvent is published when a plain token deposit is credited.
func NewTokenDepositedEvent(tokenID, account string, amount domain.Amount) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TokenDeposited,
		Payload: domain.TokenDepositedPayload{
			TokenID:   tokenID,
			Account:   account,
			Amount:    amount,
			Timestamp: time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyAsset: tokenID,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously in subscription order.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s for %s: %w", ErrMsgHandlerFailures, event.Type, errors.Join(errs...))
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
