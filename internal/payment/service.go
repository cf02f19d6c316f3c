// Package payment moves winnings to bettors and tracks per-account token
// balances, including deposits arriving through token transfers.
package payment

import (
	"context"
	"fmt"
	"slices"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/osse101/RouletteHouse_Go/internal/concurrency"
	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/event"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
	"github.com/osse101/RouletteHouse_Go/internal/repository"
)

// Service defines the interface for payment operations
type Service interface {
	// Transfer pays out in the native asset
	Transfer(ctx context.Context, recipient string, amount domain.Amount) error
	// Credit pays out in a token by raising the recipient's balance
	Credit(ctx context.Context, tokenID, recipient string, amount domain.Amount) error
	// Deposit adds tokens sent in by an account
	Deposit(ctx context.Context, tokenID, account string, amount domain.Amount) error
	Balance(ctx context.Context, tokenID, account string) (domain.Amount, error)
	ListTransfers(ctx context.Context, recipient string, limit int) ([]domain.TransferRecord, error)
	SupportsToken(tokenID string) bool
}

type service struct {
	repo            repository.Accounts
	bus             event.Bus
	clock           quartz.Clock
	supportedTokens []string
	locks           *concurrency.LockManager
}

// NewService creates a new payment service
func NewService(repo repository.Accounts, bus event.Bus, clock quartz.Clock, supportedTokens []string) Service {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if len(supportedTokens) == 0 {
		supportedTokens = []string{domain.DefaultSupportedToken}
	}
	return &service{
		repo:            repo,
		bus:             bus,
		clock:           clock,
		supportedTokens: supportedTokens,
		locks:           concurrency.NewLockManager(),
	}
}

func (s *service) SupportsToken(tokenID string) bool {
	return slices.Contains(s.supportedTokens, tokenID)
}

func (s *service) Transfer(ctx context.Context, recipient string, amount domain.Amount) error {
	tx, err := s.repo.BeginAccountsTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	record := s.newRecord(domain.NativeAsset(), recipient, amount)
	if err := tx.RecordTransfer(ctx, record); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToRecordTransfer, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	logger.FromContext(ctx).Info(LogMsgTransferRecorded, "transfer_id", record.ID, "recipient", recipient, "amount", amount)
	return nil
}

func (s *service) Credit(ctx context.Context, tokenID, recipient string, amount domain.Amount) error {
	if err := s.credit(ctx, tokenID, recipient, amount, true); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgTokenCredited, "token_id", tokenID, "recipient", recipient, "amount", amount)
	return nil
}

func (s *service) Deposit(ctx context.Context, tokenID, account string, amount domain.Amount) error {
	if !s.SupportsToken(tokenID) {
		return fmt.Errorf("%w: %s", domain.ErrTokenNotSupported, tokenID)
	}
	if err := s.credit(ctx, tokenID, account, amount, false); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgDepositReceived, "token_id", tokenID, "account", account, "amount", amount)
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewTokenDepositedEvent(tokenID, account, amount)); err != nil {
			logger.FromContext(ctx).Error(LogMsgPublishFailed, "error", err)
		}
	}
	return nil
}

// credit raises one balance under the account's lock. Payouts are also
// written to the transfer log.
func (s *service) credit(ctx context.Context, tokenID, account string, amount domain.Amount, record bool) error {
	unlock := s.locks.Lock(tokenID + "/" + account)
	defer unlock()

	tx, err := s.repo.BeginAccountsTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	balance, err := tx.GetBalanceForUpdate(ctx, tokenID, account)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToGetBalance, err)
	}
	next, ok := balance.Add(amount)
	if !ok {
		return fmt.Errorf("%w: %s balance of %s", domain.ErrLedgerOverflow, tokenID, account)
	}
	if err := tx.SetBalance(ctx, tokenID, account, next); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSetBalance, err)
	}
	if record {
		if err := tx.RecordTransfer(ctx, s.newRecord(domain.TokenAsset(tokenID), account, amount)); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToRecordTransfer, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return nil
}

// Balance returns zero for accounts that never held the token
func (s *service) Balance(ctx context.Context, tokenID, account string) (domain.Amount, error) {
	balance, err := s.repo.GetBalance(ctx, tokenID, account)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("%s: %w", ErrContextFailedToGetBalance, err)
	}
	return balance, nil
}

func (s *service) ListTransfers(ctx context.Context, recipient string, limit int) ([]domain.TransferRecord, error) {
	if limit <= 0 {
		limit = DefaultTransferListLimit
	}
	records, err := s.repo.ListTransfers(ctx, recipient, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListTransfers, err)
	}
	return records, nil
}

func (s *service) newRecord(asset domain.PayoutAsset, recipient string, amount domain.Amount) *domain.TransferRecord {
	return &domain.TransferRecord{
		ID:        uuid.New(),
		Asset:     asset,
		Recipient: recipient,
		Amount:    amount,
		CreatedAt: s.clock.Now().UTC(),
	}
}
