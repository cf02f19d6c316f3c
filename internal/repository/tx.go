package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
)

// Tx is the part of a database transaction the services depend on
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SafeRollback is meant to be deferred right after BeginTx. It rolls back
// even when ctx is already cancelled, and stays quiet when the transaction
// was committed first.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(context.WithoutCancel(ctx))
	if err == nil || isTxClosed(err) {
		return
	}
	logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
}

func isTxClosed(err error) bool {
	return errors.Is(err, pgx.ErrTxClosed) || err.Error() == domain.ErrMsgTxClosed
}
