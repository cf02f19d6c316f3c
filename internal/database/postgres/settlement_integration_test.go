package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

func newPending(created time.Time) *domain.PendingSettlement {
	return &domain.PendingSettlement{
		ID:     uuid.New(),
		Bettor: "alice.near",
		Batch: domain.SpinBatch{
			{{Kind: domain.BetStraight, Amount: domain.NewAmount(10), Selector: 17}},
			{{Kind: domain.BetRed, Amount: domain.NewAmount(5)}, {Kind: domain.BetDozen, Amount: domain.NewAmount(5), Selector: 2}},
		},
		Asset:          domain.TokenAsset("usdc.near"),
		Stake:          domain.NewAmount(20),
		CallbackBudget: 12,
		Seed:           strings.Repeat("ab", 32),
		State:          domain.SettlementStateAwaitingRandomness,
		CreatedAt:      created.UTC().Truncate(time.Microsecond),
	}
}

func TestSettlementRepository_EnsureLedgerIsIdempotent(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewSettlementRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.EnsureLedger(ctx, domain.NewAmount(1000)))
	require.NoError(t, repo.EnsureLedger(ctx, domain.NewAmount(5)))

	stats, err := repo.GetLedgerStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NewAmount(1000), stats.HouseBalance)
	assert.True(t, stats.SpinsTotal.IsZero())
	assert.True(t, stats.PayoutTotal.IsZero())
}

func TestSettlementRepository_GetLedgerStatsBeforeEnsure(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewSettlementRepository(pool)

	_, err := repo.GetLedgerStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgLedgerNotInitialized)
}

func TestSettlementRepository_LedgerRoundTripsFullWidth(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewSettlementRepository(pool)
	ctx := context.Background()
	require.NoError(t, repo.EnsureLedger(ctx, domain.Amount{}))

	want := domain.LedgerStats{
		SpinsTotal:   domain.NewAmount(3),
		BetsTotal:    domain.NewAmount(7),
		HouseBalance: domain.MaxAmount,
		PayoutTotal:  domain.MustParseAmount("18446744073709551616"),
	}

	tx, err := repo.BeginSettlementTx(ctx)
	require.NoError(t, err)
	_, err = tx.GetLedgerForUpdate(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SaveLedger(ctx, want))
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetLedgerStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettlementRepository_SaveLedgerWithoutRow(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewSettlementRepository(pool)
	ctx := context.Background()

	tx, err := repo.BeginSettlementTx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.SaveLedger(ctx, domain.LedgerStats{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgLedgerNotInitialized)
}

func TestSettlementRepository_RollbackDiscardsChanges(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewSettlementRepository(pool)
	ctx := context.Background()
	require.NoError(t, repo.EnsureLedger(ctx, domain.NewAmount(100)))

	p := newPending(time.Now())
	tx, err := repo.BeginSettlementTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SaveLedger(ctx, domain.LedgerStats{HouseBalance: domain.NewAmount(1)}))
	require.NoError(t, tx.InsertPending(ctx, p))
	require.NoError(t, tx.Rollback(ctx))

	stats, err := repo.GetLedgerStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NewAmount(100), stats.HouseBalance)

	got, err := repo.GetPending(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSettlementRepository_PendingLifecycle(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewSettlementRepository(pool)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	first := newPending(base)
	second := newPending(base.Add(time.Minute))
	second.Asset = domain.NativeAsset()

	tx, err := repo.BeginSettlementTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertPending(ctx, second))
	require.NoError(t, tx.InsertPending(ctx, first))
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetPending(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first, got)

	list, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.True(t, list[1].Asset.IsNative())

	require.NoError(t, repo.DeletePending(ctx, first.ID))
	require.NoError(t, repo.DeletePending(ctx, first.ID))

	got, err = repo.GetPending(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	tx, err = repo.BeginSettlementTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeletePending(ctx, second.ID))
	require.NoError(t, tx.Commit(ctx))

	list, err = repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSettlementRepository_DuplicatePending(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewSettlementRepository(pool)
	ctx := context.Background()
	p := newPending(time.Now())

	tx, err := repo.BeginSettlementTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertPending(ctx, p))
	require.NoError(t, tx.Commit(ctx))

	tx, err = repo.BeginSettlementTx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.InsertPending(ctx, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrMsgDuplicateSettlement)
}

func TestSettlementRepository_LedgerLockSerializes(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewSettlementRepository(pool)
	ctx := context.Background()
	require.NoError(t, repo.EnsureLedger(ctx, domain.Amount{}))

	const workers = 8
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			errs <- func() error {
				tx, err := repo.BeginSettlementTx(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = tx.Rollback(ctx) }()

				stats, err := tx.GetLedgerForUpdate(ctx)
				if err != nil {
					return err
				}
				stats.SpinsTotal, _ = stats.SpinsTotal.Add(domain.NewAmount(1))
				if err := tx.SaveLedger(ctx, stats); err != nil {
					return err
				}
				return tx.Commit(ctx)
			}()
		}()
	}
	for i := 0; i < workers; i++ {
		require.NoError(t, <-errs)
	}

	stats, err := repo.GetLedgerStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NewAmount(workers), stats.SpinsTotal)
}
