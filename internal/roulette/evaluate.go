package roulette

import (
	"fmt"
	"slices"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// Evaluate resolves bet against the pocket selected by random byte b.
// The byte is reduced modulo 37, so indices 0-33 are drawn 7 times in 256
// and indices 34-36 only 6 times.
func Evaluate(b byte, bet domain.Bet) domain.BetOutcome {
	index := b % WheelSize
	number := Wheel[index]
	red := index%2 == 1

	out := domain.BetOutcome{Number: number, Red: red}
	if wins(bet, number, red) {
		out.Won = true
		out.Multiple = Multiple(bet.Kind)
	}
	return out
}

func wins(bet domain.Bet, n uint8, red bool) bool {
	switch bet.Kind {
	case domain.BetStraight:
		return n == bet.Selector
	case domain.BetSplit, domain.BetStreet, domain.BetCorner, domain.BetSixLine:
		return slices.Contains(neighbors(bet.Kind, bet.Selector), n)
	case domain.BetColumn:
		return n > 0 && (n-1)%GroupCount == bet.Selector
	case domain.BetDozen:
		return n > 0 && (n-1)/12 == bet.Selector
	case domain.BetRed:
		return n > 0 && red
	case domain.BetBlack:
		return n > 0 && !red
	case domain.BetOdd:
		return n%2 == 1
	case domain.BetEven:
		return n > 0 && n%2 == 0
	case domain.BetLow:
		return n >= 1 && n <= LowMax
	case domain.BetHigh:
		return n > LowMax
	}
	return false
}

// EvaluateBatch consumes one byte of stream per spin, in spin order, and
// evaluates every bet of that spin against it.
func EvaluateBatch(stream []byte, batch domain.SpinBatch) ([][]domain.BetOutcome, error) {
	if len(stream) < len(batch) {
		return nil, fmt.Errorf("%w: have %d bytes for %d spins", domain.ErrInsufficientEntropy, len(stream), len(batch))
	}
	outcomes := make([][]domain.BetOutcome, len(batch))
	for i, spin := range batch {
		row := make([]domain.BetOutcome, len(spin))
		for j, bet := range spin {
			row[j] = Evaluate(stream[i], bet)
		}
		outcomes[i] = row
	}
	return outcomes, nil
}

// Payout totals stake*(multiple+1) over every winning bet. ok is false if the
// total overflows.
func Payout(batch domain.SpinBatch, outcomes [][]domain.BetOutcome) (total domain.Amount, ok bool) {
	for i, spin := range batch {
		for j, bet := range spin {
			out := outcomes[i][j]
			if !out.Won {
				continue
			}
			win, ok := bet.Amount.MulUint64(uint64(out.Multiple) + 1)
			if !ok {
				return domain.Amount{}, false
			}
			if total, ok = total.Add(win); !ok {
				return domain.Amount{}, false
			}
		}
	}
	return total, true
}
