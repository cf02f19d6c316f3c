package settlement

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/event"
	"github.com/osse101/RouletteHouse_Go/internal/ledger"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
	"github.com/osse101/RouletteHouse_Go/internal/oracle"
	"github.com/osse101/RouletteHouse_Go/internal/repository"
	"github.com/osse101/RouletteHouse_Go/internal/roulette"
)

// Spin validates the batch, escrows the stake together with the pending
// record and hands a randomness request to the requester. It returns as soon
// as the request is dispatched; the outcome arrives through Resolve.
func (s *service) Spin(ctx context.Context, req SpinRequest) (*domain.PendingSettlement, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSpinCalled, "bettor", req.Bettor, "spins", len(req.Batch), "asset", req.Asset.String(), "stake", req.Stake)

	if err := s.validateSpin(req); err != nil {
		return nil, err
	}

	seed, err := newSeed()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGenerateSeed, err)
	}

	pending := &domain.PendingSettlement{
		ID:             uuid.New(),
		Bettor:         req.Bettor,
		Batch:          req.Batch,
		Asset:          req.Asset,
		Stake:          req.Stake,
		CallbackBudget: req.CallbackBudget,
		Seed:           seed,
		State:          domain.SettlementStateAwaitingRandomness,
		CreatedAt:      s.clock.Now().UTC(),
	}

	if err := s.escrow(ctx, pending); err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewSettlementAcceptedEvent(pending))

	signReq := oracle.SignRequest{
		Payload: seed,
		Path:    pending.Bettor,
		Domain:  oracle.DomainECDSA,
	}
	cb := s.continuation(pending.ID)
	if err := s.requester.RequestRandomness(ctx, pending.ID, signReq, s.callbackBudget(req.CallbackBudget), cb); err != nil {
		log.Warn(LogMsgRequestRefused, "settlement_id", pending.ID, "error", err)
		cb(context.WithoutCancel(ctx), nil, fmt.Errorf("%w: %v", domain.ErrRequestRefused, err))
		pending.State = domain.SettlementStateFailed
		return pending, nil
	}

	log.Info(LogMsgSpinAccepted, "settlement_id", pending.ID, "spins", len(pending.Batch), "bets", pending.Batch.BetCount())
	return pending, nil
}

// validateSpin rejects a submission without touching any state.
func (s *service) validateSpin(req SpinRequest) error {
	if req.Bettor == "" || len(req.Bettor) > MaxBettorLength {
		return fmt.Errorf("%w: %q", domain.ErrInvalidBettor, req.Bettor)
	}
	if err := roulette.ValidateBatch(req.Batch); err != nil {
		return err
	}

	total, ok := req.Batch.TotalStake()
	if !ok {
		return fmt.Errorf("%w: bet amounts", domain.ErrLedgerOverflow)
	}
	if total.Cmp(req.Stake) != 0 {
		return fmt.Errorf("%w: deposit %s, bets %s", domain.ErrStakeMismatch, req.Stake, total)
	}

	switch req.Asset.Kind {
	case "", domain.AssetKindNative:
	case domain.AssetKindToken:
		if !s.tokenSupported(req.Asset.TokenID) {
			return fmt.Errorf("%w: %s", domain.ErrTokenNotSupported, req.Asset.TokenID)
		}
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownAsset, req.Asset.Kind)
	}
	return nil
}

// escrow adds the stake to the house and stores the pending record in one
// transaction.
func (s *service) escrow(ctx context.Context, pending *domain.PendingSettlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

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
	if err := l.Escrow(pending.Stake, len(pending.Batch), pending.Batch.BetCount()); err != nil {
		return fmt.Errorf("%s: %w", ErrContextEscrow, err)
	}

	if err := tx.SaveLedger(ctx, l.Stats()); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSaveLedger, err)
	}
	if err := tx.InsertPending(ctx, pending); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToInsertPending, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return nil
}

// callbackBudget converts the requested budget in seconds to a duration,
// capped by configuration. Zero means the configured maximum.
func (s *service) callbackBudget(seconds uint8) time.Duration {
	budget := time.Duration(seconds) * time.Second
	if budget == 0 || budget > s.cfg.MaxCallbackBudget {
		return s.cfg.MaxCallbackBudget
	}
	return budget
}

// continuation resolves the settlement once the oracle answers.
func (s *service) continuation(id uuid.UUID) oracle.Callback {
	return func(ctx context.Context, resp *oracle.SignatureResponse, err error) {
		if _, rerr := s.Resolve(ctx, id, resp, err); rerr != nil {
			logger.FromContext(ctx).Error(LogMsgContinuationFailed, "settlement_id", id, "error", rerr)
		}
	}
}

func newSeed() (string, error) {
	seed := make([]byte, oracle.SeedLength)
	if _, err := rand.Read(seed); err != nil {
		return "", err
	}
	return hex.EncodeToString(seed), nil
}
