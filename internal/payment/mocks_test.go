package payment

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/repository"
	"github.com/osse101/RouletteHouse_Go/internal/settlement"
)

var errTxClosed = errors.New(domain.ErrMsgTxClosed)

// MockAccounts
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) GetBalance(ctx context.Context, tokenID, account string) (domain.Amount, error) {
	args := m.Called(ctx, tokenID, account)
	return args.Get(0).(domain.Amount), args.Error(1)
}

func (m *MockAccounts) ListTransfers(ctx context.Context, recipient string, limit int) ([]domain.TransferRecord, error) {
	args := m.Called(ctx, recipient, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRecord), args.Error(1)
}

func (m *MockAccounts) BeginAccountsTx(ctx context.Context) (repository.AccountsTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.AccountsTx), args.Error(1)
}

// MockAccountsTx
type MockAccountsTx struct {
	mock.Mock
}

func (m *MockAccountsTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccountsTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccountsTx) GetBalanceForUpdate(ctx context.Context, tokenID, account string) (domain.Amount, error) {
	args := m.Called(ctx, tokenID, account)
	return args.Get(0).(domain.Amount), args.Error(1)
}

func (m *MockAccountsTx) SetBalance(ctx context.Context, tokenID, account string, balance domain.Amount) error {
	args := m.Called(ctx, tokenID, account, balance)
	return args.Error(0)
}

func (m *MockAccountsTx) RecordTransfer(ctx context.Context, record *domain.TransferRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockSpinner
type MockSpinner struct {
	mock.Mock
}

func (m *MockSpinner) Spin(ctx context.Context, req settlement.SpinRequest) (*domain.PendingSettlement, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingSettlement), args.Error(1)
}

// memAccounts is an in-memory repository.Accounts
type memAccounts struct {
	mu        sync.Mutex
	balances  map[string]domain.Amount
	transfers []domain.TransferRecord
}

func newMemAccounts() *memAccounts {
	return &memAccounts{balances: make(map[string]domain.Amount)}
}

func balanceKey(tokenID, account string) string {
	return tokenID + "/" + account
}

func (r *memAccounts) GetBalance(_ context.Context, tokenID, account string) (domain.Amount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[balanceKey(tokenID, account)], nil
}

func (r *memAccounts) ListTransfers(_ context.Context, recipient string, limit int) ([]domain.TransferRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.TransferRecord
	for _, t := range r.transfers {
		if t.Recipient == recipient {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memAccounts) BeginAccountsTx(_ context.Context) (repository.AccountsTx, error) {
	return &memAccountsTx{repo: r, balances: map[string]domain.Amount{}}, nil
}

type memAccountsTx struct {
	repo      *memAccounts
	balances  map[string]domain.Amount
	transfers []domain.TransferRecord
	done      bool
}

func (t *memAccountsTx) GetBalanceForUpdate(ctx context.Context, tokenID, account string) (domain.Amount, error) {
	if b, ok := t.balances[balanceKey(tokenID, account)]; ok {
		return b, nil
	}
	return t.repo.GetBalance(ctx, tokenID, account)
}

func (t *memAccountsTx) SetBalance(_ context.Context, tokenID, account string, balance domain.Amount) error {
	t.balances[balanceKey(tokenID, account)] = balance
	return nil
}

func (t *memAccountsTx) RecordTransfer(_ context.Context, record *domain.TransferRecord) error {
	t.transfers = append(t.transfers, *record)
	return nil
}

func (t *memAccountsTx) Commit(_ context.Context) error {
	if t.done {
		return errTxClosed
	}
	t.done = true
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for k, v := range t.balances {
		t.repo.balances[k] = v
	}
	t.repo.transfers = append(t.repo.transfers, t.transfers...)
	return nil
}

func (t *memAccountsTx) Rollback(_ context.Context) error {
	if t.done {
		return errTxClosed
	}
	t.done = true
	return nil
}
