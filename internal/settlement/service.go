// Package settlement runs the two-phase spin lifecycle: escrow the stake and
// request randomness, then evaluate, settle and pay when the randomness
// arrives.
package settlement

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/event"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
	"github.com/osse101/RouletteHouse_Go/internal/oracle"
	"github.com/osse101/RouletteHouse_Go/internal/repository"
)

// Service defines the interface for settlement operations
type Service interface {
	Spin(ctx context.Context, req SpinRequest) (*domain.PendingSettlement, error)
	Resolve(ctx context.Context, id uuid.UUID, resp *oracle.SignatureResponse, callErr error) (*domain.SettlementResult, error)
	GetSettlement(ctx context.Context, id uuid.UUID) (*domain.SettlementResult, error)
	Stats(ctx context.Context) (domain.LedgerStats, error)
	ListPending(ctx context.Context) ([]domain.PendingSettlement, error)
	ReportStalePending(ctx context.Context) (int, error)
}

// RandomnessRequester dispatches a sign request and later invokes cb with the
// outcome. A returned error means the request was never dispatched.
type RandomnessRequester interface {
	RequestRandomness(ctx context.Context, id uuid.UUID, req oracle.SignRequest, budget time.Duration, cb oracle.Callback) error
}

// Payer moves winnings to the bettor
type Payer interface {
	Transfer(ctx context.Context, recipient string, amount domain.Amount) error
	Credit(ctx context.Context, tokenID, recipient string, amount domain.Amount) error
}

// Config holds the settlement tunables
type Config struct {
	MaxCallbackBudget time.Duration
	SupportedTokens   []string
	ResultCacheSize   int
	ResultCacheTTL    time.Duration
}

// SpinRequest is a submitted batch. Stake is the amount actually deposited
// and must equal the sum of every bet.
type SpinRequest struct {
	Bettor         string
	Batch          domain.SpinBatch
	Asset          domain.PayoutAsset
	Stake          domain.Amount
	CallbackBudget uint8
}

type service struct {
	repo      repository.Settlement
	requester RandomnessRequester
	payer     Payer
	bus       event.Bus
	clock     quartz.Clock
	cfg       Config
	results   *resultCache

	// mu serializes ledger-mutating transitions within the process
	mu sync.Mutex
}

// NewService creates a new settlement service
func NewService(repo repository.Settlement, requester RandomnessRequester, payer Payer, bus event.Bus, clock quartz.Clock, cfg Config) Service {
	if cfg.MaxCallbackBudget <= 0 {
		cfg.MaxCallbackBudget = DefaultMaxCallbackBudget
	}
	if cfg.ResultCacheTTL <= 0 {
		cfg.ResultCacheTTL = DefaultResultCacheTTL
	}
	if len(cfg.SupportedTokens) == 0 {
		cfg.SupportedTokens = []string{domain.DefaultSupportedToken}
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &service{
		repo:      repo,
		requester: requester,
		payer:     payer,
		bus:       bus,
		clock:     clock,
		cfg:       cfg,
		results:   newResultCache(cfg.ResultCacheSize, cfg.ResultCacheTTL),
	}
}

// GetSettlement returns the finished result if it is still cached, otherwise
// the pending record as an awaiting_randomness view.
func (s *service) GetSettlement(ctx context.Context, id uuid.UUID) (*domain.SettlementResult, error) {
	if result, ok := s.results.Get(id); ok {
		return result, nil
	}

	pending, err := s.repo.GetPending(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetPending, err)
	}
	if pending == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSettlementNotFound, id)
	}

	return &domain.SettlementResult{
		ID:     pending.ID,
		Bettor: pending.Bettor,
		State:  pending.State,
		Asset:  pending.Asset,
		Stake:  pending.Stake,
	}, nil
}

// Stats returns (spins_total, bets_total, house_balance, payout_total)
func (s *service) Stats(ctx context.Context) (domain.LedgerStats, error) {
	return s.repo.GetLedgerStats(ctx)
}

// ListPending returns every settlement still waiting for randomness
func (s *service) ListPending(ctx context.Context) ([]domain.PendingSettlement, error) {
	return s.repo.ListPending(ctx)
}

// ReportStalePending logs every pending settlement left over from a previous
// run. Their stakes stay escrowed; nothing is refunded or retried.
func (s *service) ReportStalePending(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	pending, err := s.repo.ListPending(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	for _, p := range pending {
		log.Warn(LogMsgStalePending,
			"settlement_id", p.ID,
			"bettor", p.Bettor,
			"stake", p.Stake,
			"age", now.Sub(p.CreatedAt).Round(time.Second))
	}
	if len(pending) > 0 {
		log.Warn(LogMsgStalePendingSummary, "count", len(pending))
	}
	return len(pending), nil
}

func (s *service) tokenSupported(tokenID string) bool {
	return slices.Contains(s.cfg.SupportedTokens, tokenID)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}
