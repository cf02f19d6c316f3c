package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/event"
	"github.com/osse101/RouletteHouse_Go/internal/ledger"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
	"github.com/osse101/RouletteHouse_Go/internal/oracle"
	"github.com/osse101/RouletteHouse_Go/internal/repository"
	"github.com/osse101/RouletteHouse_Go/internal/roulette"
)

// Resolve completes a pending settlement with the oracle's answer.
//
// A failed or malformed answer yields the neutral result with no ledger
// change and no payment. Otherwise every spin consumes one byte of the
// signature stream, the payout is settled against the house and paid out.
// A ledger invariant violation rolls the settlement back, drops the pending
// record and is returned to the caller.
func (s *service) Resolve(ctx context.Context, id uuid.UUID, resp *oracle.SignatureResponse, callErr error) (*domain.SettlementResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgResolveCalled, "settlement_id", id, "ok", callErr == nil)

	s.mu.Lock()
	locked := true
	defer func() {
		if locked {
			s.mu.Unlock()
		}
	}()

	pending, err := s.repo.GetPending(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetPending, err)
	}
	if pending == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSettlementNotFound, id)
	}
	if pending.State != domain.SettlementStateAwaitingRandomness {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrSettlementNotPending, id, pending.State)
	}

	var outcomes [][]domain.BetOutcome
	if callErr == nil {
		outcomes, callErr = evaluate(resp, pending.Batch)
	}
	if callErr != nil {
		return s.fail(ctx, pending, callErr)
	}

	payout, ok := roulette.Payout(pending.Batch, outcomes)
	if !ok {
		return s.abort(ctx, pending, fmt.Errorf("%w: %s", domain.ErrPayoutOverflow, id))
	}

	if err := s.settle(ctx, pending.ID, payout); err != nil {
		if domain.IsLedgerFatal(err) {
			return s.abort(ctx, pending, err)
		}
		return nil, err
	}

	result := s.newResult(pending, domain.SettlementStateResolved)
	result.Payout = payout
	result.Outcomes = outcomes

	// payment runs outside the ledger lock
	settled := *result
	s.results.Set(&settled)
	s.mu.Unlock()
	locked = false

	var payErr error
	if !payout.IsZero() {
		if payErr = s.pay(ctx, pending, payout); payErr != nil {
			log.Error(LogMsgPaymentFailed, "settlement_id", id, "bettor", pending.Bettor, "payout", payout, "error", payErr)
			result.Error = payErr.Error()
			unpaid := *result
			s.results.Set(&unpaid)
		}
	}

	s.publish(ctx, event.NewSettlementResolvedEvent(result, pending.Batch.BetCount(), countWins(outcomes), result.ResolvedAt.Sub(pending.CreatedAt)))
	log.Info(LogMsgSettlementResolved, "settlement_id", id, "payout", payout, "spins", len(pending.Batch))

	if payErr != nil {
		return result, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, payErr)
	}
	return result, nil
}

// evaluate derives the byte stream and evaluates every bet of the batch.
func evaluate(resp *oracle.SignatureResponse, batch domain.SpinBatch) ([][]domain.BetOutcome, error) {
	stream, err := oracle.RandomBytes(resp)
	if err != nil {
		return nil, err
	}
	return roulette.EvaluateBatch(stream, batch)
}

// settle pays out of the house and drops the pending record atomically.
func (s *service) settle(ctx context.Context, id uuid.UUID, payout domain.Amount) error {
	tx, err := s.repo.BeginSettlementTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	stats, err := tx.GetLedgerForUpdate(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToLoadLedger, err)
	}

	l := ledger.FromStats(stats)
	if err := l.Settle(payout); err != nil {
		return err
	}

	if err := tx.SaveLedger(ctx, l.Stats()); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSaveLedger, err)
	}
	if err := tx.DeletePending(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToDeletePending, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return nil
}

func (s *service) pay(ctx context.Context, pending *domain.PendingSettlement, payout domain.Amount) error {
	if s.payer == nil {
		return errors.New("no payer configured")
	}
	if pending.Asset.IsNative() {
		return s.payer.Transfer(ctx, pending.Bettor, payout)
	}
	return s.payer.Credit(ctx, pending.Asset.TokenID, pending.Bettor, payout)
}

// fail completes the settlement with the neutral outcome. The stake stays
// with the house.
func (s *service) fail(ctx context.Context, pending *domain.PendingSettlement, cause error) (*domain.SettlementResult, error) {
	logger.FromContext(ctx).Warn(LogMsgOracleCallbackFail, "settlement_id", pending.ID, "error", cause)

	if err := s.repo.DeletePending(ctx, pending.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDeletePending, err)
	}

	result := s.newResult(pending, domain.SettlementStateFailed)
	result.Outcomes = domain.FailureOutcomes()
	result.Error = cause.Error()

	s.results.Set(result)
	s.publish(ctx, event.NewSettlementFailedEvent(event.SettlementFailed, result, cause.Error()))
	return result, nil
}

// abort drops the pending record after a rolled back settle and surfaces the
// ledger error.
func (s *service) abort(ctx context.Context, pending *domain.PendingSettlement, cause error) (*domain.SettlementResult, error) {
	logger.FromContext(ctx).Error(LogMsgSettlementAborted, "settlement_id", pending.ID, "error", cause)

	result := s.newResult(pending, domain.SettlementStateAborted)
	result.Error = cause.Error()

	if err := s.repo.DeletePending(ctx, pending.ID); err != nil {
		return result, errors.Join(
			fmt.Errorf("%s: %w", ErrContextSettle, cause),
			fmt.Errorf("%s: %w", ErrContextFailedToDeletePending, err),
		)
	}

	s.results.Set(result)
	s.publish(ctx, event.NewSettlementFailedEvent(event.SettlementAborted, result, cause.Error()))
	return result, fmt.Errorf("%s: %w", ErrContextSettle, cause)
}

func (s *service) newResult(pending *domain.PendingSettlement, state domain.SettlementState) *domain.SettlementResult {
	return &domain.SettlementResult{
		ID:         pending.ID,
		Bettor:     pending.Bettor,
		State:      state,
		Asset:      pending.Asset,
		Stake:      pending.Stake,
		ResolvedAt: s.clock.Now().UTC(),
	}
}

func countWins(outcomes [][]domain.BetOutcome) int {
	wins := 0
	for _, spin := range outcomes {
		for _, o := range spin {
			if o.Won {
				wins++
			}
		}
	}
	return wins
}
