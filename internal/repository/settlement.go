package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// Settlement defines the data access required by the settlement service
type Settlement interface {
	// EnsureLedger creates the house ledger row with the initial balance if it
	// does not exist yet. An existing row is left untouched.
	EnsureLedger(ctx context.Context, initialHouse domain.Amount) error
	GetLedgerStats(ctx context.Context) (domain.LedgerStats, error)

	GetPending(ctx context.Context, id uuid.UUID) (*domain.PendingSettlement, error)
	ListPending(ctx context.Context) ([]domain.PendingSettlement, error)
	DeletePending(ctx context.Context, id uuid.UUID) error

	// Transaction support
	BeginSettlementTx(ctx context.Context) (SettlementTx, error)
}

// SettlementTx groups the ledger row lock with the pending record changes so
// escrow and payout are atomic with their bookkeeping
type SettlementTx interface {
	Tx // Commit, Rollback

	GetLedgerForUpdate(ctx context.Context) (domain.LedgerStats, error)
	SaveLedger(ctx context.Context, stats domain.LedgerStats) error

	InsertPending(ctx context.Context, pending *domain.PendingSettlement) error
	DeletePending(ctx context.Context, id uuid.UUID) error
}
