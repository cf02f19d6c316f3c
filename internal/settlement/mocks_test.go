package settlement

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/oracle"
	"github.com/osse101/RouletteHouse_Go/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) EnsureLedger(ctx context.Context, initialHouse domain.Amount) error {
	args := m.Called(ctx, initialHouse)
	return args.Error(0)
}

func (m *MockRepository) GetLedgerStats(ctx context.Context) (domain.LedgerStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.LedgerStats), args.Error(1)
}

func (m *MockRepository) GetPending(ctx context.Context, id uuid.UUID) (*domain.PendingSettlement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingSettlement), args.Error(1)
}

func (m *MockRepository) ListPending(ctx context.Context) ([]domain.PendingSettlement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingSettlement), args.Error(1)
}

func (m *MockRepository) DeletePending(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) BeginSettlementTx(ctx context.Context) (repository.SettlementTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.SettlementTx), args.Error(1)
}

// MockSettlementTx
type MockSettlementTx struct {
	mock.Mock
}

func (m *MockSettlementTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSettlementTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSettlementTx) GetLedgerForUpdate(ctx context.Context) (domain.LedgerStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.LedgerStats), args.Error(1)
}

func (m *MockSettlementTx) SaveLedger(ctx context.Context, stats domain.LedgerStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockSettlementTx) InsertPending(ctx context.Context, pending *domain.PendingSettlement) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}

func (m *MockSettlementTx) DeletePending(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPayer
type MockPayer struct {
	mock.Mock
}

func (m *MockPayer) Transfer(ctx context.Context, recipient string, amount domain.Amount) error {
	args := m.Called(ctx, recipient, amount)
	return args.Error(0)
}

func (m *MockPayer) Credit(ctx context.Context, tokenID, recipient string, amount domain.Amount) error {
	args := m.Called(ctx, tokenID, recipient, amount)
	return args.Error(0)
}

// captureRequester records dispatched requests so tests can answer them
type captureRequester struct {
	mu       sync.Mutex
	refuse   error
	requests map[uuid.UUID]capturedRequest
}

type capturedRequest struct {
	req    oracle.SignRequest
	budget time.Duration
	cb     oracle.Callback
}

func newCaptureRequester() *captureRequester {
	return &captureRequester{requests: make(map[uuid.UUID]capturedRequest)}
}

func (r *captureRequester) RequestRandomness(_ context.Context, id uuid.UUID, req oracle.SignRequest, budget time.Duration, cb oracle.Callback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refuse != nil {
		return r.refuse
	}
	r.requests[id] = capturedRequest{req: req, budget: budget, cb: cb}
	return nil
}

func (r *captureRequester) get(id uuid.UUID) (capturedRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.requests[id]
	return c, ok
}

// memRepository is an in-memory repository.Settlement
type memRepository struct {
	mu      sync.Mutex
	txMu    sync.Mutex
	ledger  domain.LedgerStats
	pending map[uuid.UUID]domain.PendingSettlement
}

func newMemRepository(house domain.Amount) *memRepository {
	return &memRepository{
		ledger:  domain.LedgerStats{HouseBalance: house},
		pending: make(map[uuid.UUID]domain.PendingSettlement),
	}
}

func (r *memRepository) EnsureLedger(_ context.Context, _ domain.Amount) error { return nil }

func (r *memRepository) GetLedgerStats(_ context.Context) (domain.LedgerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger, nil
}

func (r *memRepository) GetPending(_ context.Context, id uuid.UUID) (*domain.PendingSettlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memRepository) ListPending(_ context.Context) ([]domain.PendingSettlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.PendingSettlement, 0, len(r.pending))
	for _, p := range r.pending {
		out = append(out, p)
	}
	return out, nil
}

func (r *memRepository) DeletePending(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, id)
	return nil
}

func (r *memRepository) BeginSettlementTx(_ context.Context) (repository.SettlementTx, error) {
	r.txMu.Lock()
	r.mu.Lock()
	tx := &memTx{repo: r, ledger: r.ledger, deletes: map[uuid.UUID]bool{}}
	r.mu.Unlock()
	return tx, nil
}

// memTx buffers writes until Commit
type memTx struct {
	repo    *memRepository
	ledger  domain.LedgerStats
	inserts []domain.PendingSettlement
	deletes map[uuid.UUID]bool
	done    bool
}

func (t *memTx) GetLedgerForUpdate(_ context.Context) (domain.LedgerStats, error) {
	return t.ledger, nil
}

func (t *memTx) SaveLedger(_ context.Context, stats domain.LedgerStats) error {
	t.ledger = stats
	return nil
}

func (t *memTx) InsertPending(_ context.Context, p *domain.PendingSettlement) error {
	t.inserts = append(t.inserts, *p)
	return nil
}

func (t *memTx) DeletePending(_ context.Context, id uuid.UUID) error {
	t.deletes[id] = true
	return nil
}

func (t *memTx) Commit(_ context.Context) error {
	if t.done {
		return errTxClosed
	}
	t.done = true
	t.repo.mu.Lock()
	t.repo.ledger = t.ledger
	for _, p := range t.inserts {
		t.repo.pending[p.ID] = p
	}
	for id := range t.deletes {
		delete(t.repo.pending, id)
	}
	t.repo.mu.Unlock()
	t.repo.txMu.Unlock()
	return nil
}

func (t *memTx) Rollback(_ context.Context) error {
	if t.done {
		return errTxClosed
	}
	t.done = true
	t.repo.txMu.Unlock()
	return nil
}
