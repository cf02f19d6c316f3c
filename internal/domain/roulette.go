package domain

import (
	"fmt"
	"strings"
)

// BetKind identifies one of the fixed inside/outside bet categories.
type BetKind uint8

const (
	BetStraight BetKind = iota
	BetSplit
	BetStreet
	BetCorner
	BetSixLine
	BetColumn
	BetDozen
	BetRed
	BetBlack
	BetOdd
	BetEven
	BetLow
	BetHigh

	betKindCount
)

var betKindNames = [betKindCount]string{
	BetStraight: "straight",
	BetSplit:    "split",
	BetStreet:   "street",
	BetCorner:   "corner",
	BetSixLine:  "six_line",
	BetColumn:   "column",
	BetDozen:    "dozen",
	BetRed:      "red",
	BetBlack:    "black",
	BetOdd:      "odd",
	BetEven:     "even",
	BetLow:      "low",
	BetHigh:     "high",
}

// AllBetKinds lists every kind in declaration order.
func AllBetKinds() []BetKind {
	kinds := make([]BetKind, 0, betKindCount)
	for k := BetKind(0); k < betKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is a known kind.
func (k BetKind) Valid() bool {
	return k < betKindCount
}

func (k BetKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("BetKind(%d)", uint8(k))
	}
	return betKindNames[k]
}

// ParseBetKind resolves a kind from its wire name (case-insensitive).
func ParseBetKind(s string) (BetKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range betKindNames {
		if n == name {
			return BetKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown bet kind %q", ErrInvalidInput, s)
}

func (k BetKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: bet kind %d", ErrInvalidInput, uint8(k))
	}
	return []byte(betKindNames[k]), nil
}

func (k *BetKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBetKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Bet is a single wager. Selector is the number for straight bets, the
// neighbor table index for split/street/corner/six_line, the group (0-2) for
// column/dozen, and unused for the even-money bets.
type Bet struct {
	Kind     BetKind `json:"kind"`
	Amount   Amount  `json:"amount"`
	Selector uint8   `json:"selector,omitempty"`
}

// Spin is a set of bets resolved against one wheel outcome.
type Spin []Bet

// SpinBatch is every spin submitted in one call.
type SpinBatch []Spin

// BetCount returns the number of bets across all spins.
func (b SpinBatch) BetCount() int {
	n := 0
	for _, spin := range b {
		n += len(spin)
	}
	return n
}

// TotalStake sums every bet amount. ok is false on overflow.
func (b SpinBatch) TotalStake() (total Amount, ok bool) {
	for _, spin := range b {
		for _, bet := range spin {
			total, ok = total.Add(bet.Amount)
			if !ok {
				return Amount{}, false
			}
		}
	}
	return total, true
}

// BetOutcome is the evaluation of one bet. Multiple is zero on a loss.
type BetOutcome struct {
	Won      bool  `json:"won"`
	Number   uint8 `json:"number"`
	Red      bool  `json:"red"`
	Multiple uint8 `json:"multiple"`
}

// FailureOutcomes is the neutral result reported when randomness could not be
// obtained: one spin holding one all-false, zero-multiple outcome.
func FailureOutcomes() [][]BetOutcome {
	return [][]BetOutcome{{{}}}
}
