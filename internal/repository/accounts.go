package repository

import (
	"context"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// Accounts defines the data access required by the payment service
type Accounts interface {
	GetBalance(ctx context.Context, tokenID, account string) (domain.Amount, error)
	ListTransfers(ctx context.Context, recipient string, limit int) ([]domain.TransferRecord, error)

	// Transaction support
	BeginAccountsTx(ctx context.Context) (AccountsTx, error)
}

// AccountsTx is a transaction over token balances and the transfer log
type AccountsTx interface {
	Tx // Commit, Rollback

	GetBalanceForUpdate(ctx context.Context, tokenID, account string) (domain.Amount, error)
	SetBalance(ctx context.Context, tokenID, account string, balance domain.Amount) error
	RecordTransfer(ctx context.Context, record *domain.TransferRecord) error
}
