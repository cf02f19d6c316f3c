package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/repository"
)

// AccountsRepository implements repository.Accounts for PostgreSQL
type AccountsRepository struct {
	db *pgxpool.Pool
}

// NewAccountsRepository creates a new AccountsRepository
func NewAccountsRepository(db *pgxpool.Pool) *AccountsRepository {
	return &AccountsRepository{db: db}
}

// GetBalance returns zero for accounts that never held the token
func (r *AccountsRepository) GetBalance(ctx context.Context, tokenID, account string) (domain.Amount, error) {
	var balance string
	err := r.db.QueryRow(ctx, `
		SELECT balance::text FROM token_balances
		WHERE token_id = $1 AND account = $2`,
		tokenID, account).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Amount{}, nil
		}
		return domain.Amount{}, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}
	return parseAmount("balance", balance)
}

// ListTransfers returns the most recent transfers to recipient first
func (r *AccountsRepository) ListTransfers(ctx context.Context, recipient string, limit int) ([]domain.TransferRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT transfer_id, asset_kind, token_id, recipient, amount::text, created_at
		FROM transfers
		WHERE recipient = $1
		ORDER BY created_at DESC, transfer_id
		LIMIT $2`,
		recipient, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransfers, err)
	}
	defer rows.Close()

	records := make([]domain.TransferRecord, 0)
	for rows.Next() {
		var (
			rec     domain.TransferRecord
			kind    string
			tokenID string
			amount  string
		)
		if err := rows.Scan(&rec.ID, &kind, &tokenID, &rec.Recipient, &amount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransfers, err)
		}
		if rec.Amount, err = parseAmount("amount", amount); err != nil {
			return nil, err
		}
		rec.Asset = assetFromColumns(kind, tokenID)
		rec.CreatedAt = rec.CreatedAt.UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransfers, err)
	}
	return records, nil
}

func (r *AccountsRepository) BeginAccountsTx(ctx context.Context) (repository.AccountsTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &accountsTx{tx: tx}, nil
}

type accountsTx struct {
	tx pgx.Tx
}

func (t *accountsTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *accountsTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetBalanceForUpdate creates a zero row when needed so the lock always has
// something to hold
func (t *accountsTx) GetBalanceForUpdate(ctx context.Context, tokenID, account string) (domain.Amount, error) {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO token_balances (token_id, account, balance)
		VALUES ($1, $2, 0)
		ON CONFLICT (token_id, account) DO NOTHING`,
		tokenID, account)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}

	var balance string
	err = t.tx.QueryRow(ctx, `
		SELECT balance::text FROM token_balances
		WHERE token_id = $1 AND account = $2
		FOR UPDATE`,
		tokenID, account).Scan(&balance)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}
	return parseAmount("balance", balance)
}

func (t *accountsTx) SetBalance(ctx context.Context, tokenID, account string, balance domain.Amount) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO token_balances (token_id, account, balance, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (token_id, account) DO UPDATE
		SET balance = EXCLUDED.balance, updated_at = NOW()`,
		tokenID, account, numeric(balance))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetBalance, err)
	}
	return nil
}

func (t *accountsTx) RecordTransfer(ctx context.Context, rec *domain.TransferRecord) error {
	kind, tokenID := assetColumns(rec.Asset)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO transfers (transfer_id, asset_kind, token_id, recipient, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, kind, tokenID, rec.Recipient, numeric(rec.Amount), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordTransfer, err)
	}
	return nil
}
