package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/oracle"
	"github.com/osse101/RouletteHouse_Go/internal/payment"
	"github.com/osse101/RouletteHouse_Go/internal/settlement"
)

// MockSettlementService
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) Spin(ctx context.Context, req settlement.SpinRequest) (*domain.PendingSettlement, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingSettlement), args.Error(1)
}

func (m *MockSettlementService) Resolve(ctx context.Context, id uuid.UUID, resp *oracle.SignatureResponse, callErr error) (*domain.SettlementResult, error) {
	args := m.Called(ctx, id, resp, callErr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementResult), args.Error(1)
}

func (m *MockSettlementService) GetSettlement(ctx context.Context, id uuid.UUID) (*domain.SettlementResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementResult), args.Error(1)
}

func (m *MockSettlementService) Stats(ctx context.Context) (domain.LedgerStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.LedgerStats), args.Error(1)
}

func (m *MockSettlementService) ListPending(ctx context.Context) ([]domain.PendingSettlement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingSettlement), args.Error(1)
}

func (m *MockSettlementService) ReportStalePending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Transfer(ctx context.Context, recipient string, amount domain.Amount) error {
	return m.Called(ctx, recipient, amount).Error(0)
}

func (m *MockPaymentService) Credit(ctx context.Context, tokenID, recipient string, amount domain.Amount) error {
	return m.Called(ctx, tokenID, recipient, amount).Error(0)
}

func (m *MockPaymentService) Deposit(ctx context.Context, tokenID, account string, amount domain.Amount) error {
	return m.Called(ctx, tokenID, account, amount).Error(0)
}

func (m *MockPaymentService) Balance(ctx context.Context, tokenID, account string) (domain.Amount, error) {
	args := m.Called(ctx, tokenID, account)
	return args.Get(0).(domain.Amount), args.Error(1)
}

func (m *MockPaymentService) ListTransfers(ctx context.Context, recipient string, limit int) ([]domain.TransferRecord, error) {
	args := m.Called(ctx, recipient, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRecord), args.Error(1)
}

func (m *MockPaymentService) SupportsToken(tokenID string) bool {
	return m.Called(tokenID).Bool(0)
}

// MockReceiver
type MockReceiver struct {
	mock.Mock
}

func (m *MockReceiver) Receive(ctx context.Context, tokenID, sender string, amount domain.Amount, msg string) (payment.Receipt, error) {
	args := m.Called(ctx, tokenID, sender, amount, msg)
	return args.Get(0).(payment.Receipt), args.Error(1)
}
