package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/repository"
)

const ledgerColumns = `spins_total::text, bets_total::text, house_balance::text, payout_total::text`

const pendingColumns = `settlement_id, bettor, batch, asset_kind, token_id, stake::text, callback_budget, seed, state, created_at`

// querier is the part of pgxpool.Pool and pgx.Tx the queries need
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SettlementRepository implements repository.Settlement for PostgreSQL
type SettlementRepository struct {
	db *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository(db *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// EnsureLedger inserts the ledger row on first boot
func (r *SettlementRepository) EnsureLedger(ctx context.Context, initialHouse domain.Amount) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO house_ledger (id, house_balance)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`,
		houseLedgerID, numeric(initialHouse))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEnsureLedger, err)
	}
	return nil
}

// GetLedgerStats reads the ledger without locking it
func (r *SettlementRepository) GetLedgerStats(ctx context.Context) (domain.LedgerStats, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM house_ledger WHERE id = $1`, houseLedgerID)
	stats, err := scanLedger(row)
	if err != nil {
		return domain.LedgerStats{}, fmt.Errorf("%s: %w", ErrMsgFailedToGetLedger, err)
	}
	return stats, nil
}

// GetPending returns nil when no pending settlement has the id
func (r *SettlementRepository) GetPending(ctx context.Context, id uuid.UUID) (*domain.PendingSettlement, error) {
	row := r.db.QueryRow(ctx, `SELECT `+pendingColumns+` FROM pending_settlements WHERE settlement_id = $1`, id)
	p, err := scanPending(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPending, err)
	}
	return p, nil
}

// ListPending returns pending settlements oldest first
func (r *SettlementRepository) ListPending(ctx context.Context) ([]domain.PendingSettlement, error) {
	rows, err := r.db.Query(ctx, `SELECT `+pendingColumns+` FROM pending_settlements ORDER BY created_at, settlement_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPending, err)
	}
	defer rows.Close()

	var out []domain.PendingSettlement
	for rows.Next() {
		p, err := scanPending(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPending, err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPending, err)
	}
	return out, nil
}

func (r *SettlementRepository) DeletePending(ctx context.Context, id uuid.UUID) error {
	return deletePending(ctx, r.db, id)
}

// BeginSettlementTx starts a transaction for escrow or payout
func (r *SettlementRepository) BeginSettlementTx(ctx context.Context) (repository.SettlementTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &settlementTx{tx: tx}, nil
}

// settlementTx implements repository.SettlementTx
type settlementTx struct {
	tx pgx.Tx
}

func (t *settlementTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *settlementTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetLedgerForUpdate locks the ledger row until the transaction ends
func (t *settlementTx) GetLedgerForUpdate(ctx context.Context) (domain.LedgerStats, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM house_ledger WHERE id = $1 FOR UPDATE`, houseLedgerID)
	stats, err := scanLedger(row)
	if err != nil {
		return domain.LedgerStats{}, fmt.Errorf("%s: %w", ErrMsgFailedToLockLedger, err)
	}
	return stats, nil
}

func (t *settlementTx) SaveLedger(ctx context.Context, stats domain.LedgerStats) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE house_ledger
		SET spins_total = $2, bets_total = $3, house_balance = $4, payout_total = $5, updated_at = NOW()
		WHERE id = $1`,
		houseLedgerID,
		numeric(stats.SpinsTotal), numeric(stats.BetsTotal), numeric(stats.HouseBalance), numeric(stats.PayoutTotal))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveLedger, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveLedger, errors.New(ErrMsgLedgerNotInitialized))
	}
	return nil
}

func (t *settlementTx) InsertPending(ctx context.Context, p *domain.PendingSettlement) error {
	batch, err := json.Marshal(p.Batch)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalBatch, err)
	}
	kind, tokenID := assetColumns(p.Asset)

	_, err = t.tx.Exec(ctx, `
		INSERT INTO pending_settlements
			(settlement_id, bettor, batch, asset_kind, token_id, stake, callback_budget, seed, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Bettor, batch, kind, tokenID, numeric(p.Stake), int16(p.CallbackBudget), p.Seed, string(p.State), p.CreatedAt)
	if err != nil {
		if isPgError(err, PgErrorCodeUniqueViolation) {
			return fmt.Errorf("%s %s: %w", ErrMsgDuplicateSettlement, p.ID, domain.ErrInvalidInput)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPending, err)
	}
	return nil
}

func (t *settlementTx) DeletePending(ctx context.Context, id uuid.UUID) error {
	return deletePending(ctx, t.tx, id)
}

// deletePending is idempotent
func deletePending(ctx context.Context, q querier, id uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM pending_settlements WHERE settlement_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeletePending, err)
	}
	return nil
}

func scanLedger(row rowScanner) (domain.LedgerStats, error) {
	var spins, bets, house, payout string
	if err := row.Scan(&spins, &bets, &house, &payout); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LedgerStats{}, errors.New(ErrMsgLedgerNotInitialized)
		}
		return domain.LedgerStats{}, err
	}

	var stats domain.LedgerStats
	var err error
	if stats.SpinsTotal, err = parseAmount("spins_total", spins); err != nil {
		return domain.LedgerStats{}, err
	}
	if stats.BetsTotal, err = parseAmount("bets_total", bets); err != nil {
		return domain.LedgerStats{}, err
	}
	if stats.HouseBalance, err = parseAmount("house_balance", house); err != nil {
		return domain.LedgerStats{}, err
	}
	if stats.PayoutTotal, err = parseAmount("payout_total", payout); err != nil {
		return domain.LedgerStats{}, err
	}
	return stats, nil
}

func scanPending(row rowScanner) (*domain.PendingSettlement, error) {
	var (
		p       domain.PendingSettlement
		batch   []byte
		kind    string
		tokenID string
		stake   string
		budget  int16
		state   string
	)
	if err := row.Scan(&p.ID, &p.Bettor, &batch, &kind, &tokenID, &stake, &budget, &p.Seed, &state, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(batch, &p.Batch); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalBatch, err)
	}

	var err error
	if p.Stake, err = parseAmount("stake", stake); err != nil {
		return nil, err
	}
	p.Asset = assetFromColumns(kind, tokenID)
	p.CallbackBudget = uint8(budget)
	p.State = domain.SettlementState(state)
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}
