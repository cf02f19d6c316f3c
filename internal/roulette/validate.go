package roulette

import (
	"fmt"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// Validate reports whether bet is placeable: a positive amount and a selector
// inside the domain of its kind.
func Validate(bet domain.Bet) bool {
	if bet.Amount.IsZero() {
		return false
	}
	switch bet.Kind {
	case domain.BetStraight:
		return bet.Selector >= 1 && bet.Selector <= MaxNumber
	case domain.BetSplit:
		return int(bet.Selector) < len(SplitBets)
	case domain.BetStreet:
		return int(bet.Selector) < len(StreetBets)
	case domain.BetCorner:
		return int(bet.Selector) < len(CornerBets)
	case domain.BetSixLine:
		return int(bet.Selector) < len(SixLineBets)
	case domain.BetColumn, domain.BetDozen:
		return bet.Selector < GroupCount
	case domain.BetRed, domain.BetBlack, domain.BetOdd, domain.BetEven, domain.BetLow, domain.BetHigh:
		return true
	}
	return false
}

// ValidateBatch checks the batch shape and every bet. A single illegal bet
// rejects the whole batch.
func ValidateBatch(batch domain.SpinBatch) error {
	if len(batch) >= domain.MaxSpinsPerBatch {
		return fmt.Errorf("%w: %d spins (max %d)", domain.ErrTooManySpins, len(batch), domain.MaxSpinsPerBatch-1)
	}
	if len(batch) == 0 {
		return domain.ErrEmptyBatch
	}
	for i, spin := range batch {
		if len(spin) == 0 {
			return fmt.Errorf("%w: spin %d", domain.ErrEmptyBatch, i)
		}
		for j, bet := range spin {
			if !Validate(bet) {
				return fmt.Errorf("%w: spin %d bet %d (%s selector=%d amount=%s)",
					domain.ErrIllegalBet, i, j, bet.Kind, bet.Selector, bet.Amount)
			}
		}
	}
	return nil
}
