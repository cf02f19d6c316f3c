package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxSpinsPerBatch bounds a batch so it never needs more random bytes than a
// single signature yields.
const MaxSpinsPerBatch = 64

// SettlementState tracks a batch through submit and resolution.
type SettlementState string

const (
	SettlementStateAwaitingRandomness SettlementState = "awaiting_randomness"
	SettlementStateResolved           SettlementState = "resolved"
	SettlementStateFailed             SettlementState = "failed"
	SettlementStateAborted            SettlementState = "aborted"
)

// Terminal reports whether no further transition can happen.
func (s SettlementState) Terminal() bool {
	switch s {
	case SettlementStateResolved, SettlementStateFailed, SettlementStateAborted:
		return true
	}
	return false
}

// AssetKind distinguishes the native asset from balance-tracked tokens.
type AssetKind string

const (
	AssetKindNative AssetKind = "native"
	AssetKindToken  AssetKind = "token"
)

// PayoutAsset is the asset winnings are paid in.
type PayoutAsset struct {
	Kind    AssetKind `json:"kind" validate:"required,oneof=native token"`
	TokenID string    `json:"token_id,omitempty" validate:"required_if=Kind token,max=64"`
}

// NativeAsset is the chain's native asset.
func NativeAsset() PayoutAsset {
	return PayoutAsset{Kind: AssetKindNative}
}

// TokenAsset is a balance-tracked token.
func TokenAsset(tokenID string) PayoutAsset {
	return PayoutAsset{Kind: AssetKindToken, TokenID: tokenID}
}

// IsNative reports whether payouts go through a native transfer.
func (a PayoutAsset) IsNative() bool {
	return a.Kind == "" || a.Kind == AssetKindNative
}

func (a PayoutAsset) String() string {
	if a.IsNative() {
		return string(AssetKindNative)
	}
	return a.TokenID
}

// PendingSettlement correlates an outstanding randomness request with the
// batch that is waiting on it. It is deleted once resolution completes.
type PendingSettlement struct {
	ID             uuid.UUID       `json:"settlement_id"`
	Bettor         string          `json:"bettor"`
	Batch          SpinBatch       `json:"batch"`
	Asset          PayoutAsset     `json:"asset"`
	Stake          Amount          `json:"stake"`
	CallbackBudget uint8           `json:"callback_budget"`
	Seed           string          `json:"seed"`
	State          SettlementState `json:"state"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SettlementResult is what a bettor sees once the batch has been resolved.
type SettlementResult struct {
	ID         uuid.UUID       `json:"settlement_id"`
	Bettor     string          `json:"bettor"`
	State      SettlementState `json:"state"`
	Asset      PayoutAsset     `json:"asset"`
	Stake      Amount          `json:"stake"`
	Payout     Amount          `json:"payout"`
	Outcomes   [][]BetOutcome  `json:"outcomes"`
	Error      string          `json:"error,omitempty"`
	ResolvedAt time.Time       `json:"resolved_at"`
}

// LedgerStats is the read-only view of the house ledger.
type LedgerStats struct {
	SpinsTotal   Amount `json:"spins_total"`
	BetsTotal    Amount `json:"bets_total"`
	HouseBalance Amount `json:"house_balance"`
	PayoutTotal  Amount `json:"payout_total"`
}

// Tuple returns (spins, bets, house, payout) in that order.
func (s LedgerStats) Tuple() [4]Amount {
	return [4]Amount{s.SpinsTotal, s.BetsTotal, s.HouseBalance, s.PayoutTotal}
}
