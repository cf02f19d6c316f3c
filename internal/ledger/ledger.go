// Package ledger holds the house's running counters.
package ledger

import (
	"fmt"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// Ledger tracks spins, bets, the house balance and the total paid out.
// It is not safe for concurrent use; the settlement service owns it for the
// lifetime of one transaction.
type Ledger struct {
	spins  domain.Amount
	bets   domain.Amount
	house  domain.Amount
	payout domain.Amount
}

// New returns a ledger with no history and the given house balance.
func New(house domain.Amount) *Ledger {
	return &Ledger{house: house}
}

// FromStats rebuilds a ledger from persisted counters.
func FromStats(s domain.LedgerStats) *Ledger {
	return &Ledger{
		spins:  s.SpinsTotal,
		bets:   s.BetsTotal,
		house:  s.HouseBalance,
		payout: s.PayoutTotal,
	}
}

// Escrow adds an accepted deposit to the house and counts its spins and bets.
// On overflow nothing is changed.
func (l *Ledger) Escrow(amount domain.Amount, spins, bets int) error {
	if spins < 0 || bets < 0 {
		return fmt.Errorf("%w: negative counts spins=%d bets=%d", domain.ErrInvalidInput, spins, bets)
	}

	house, ok := l.house.Add(amount)
	if !ok {
		return fmt.Errorf("%w: %s %s + %s", domain.ErrLedgerOverflow, fieldHouse, l.house, amount)
	}
	spinsTotal, ok := l.spins.Add(domain.NewAmount(uint64(spins)))
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrLedgerOverflow, fieldSpins)
	}
	betsTotal, ok := l.bets.Add(domain.NewAmount(uint64(bets)))
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrLedgerOverflow, fieldBets)
	}

	l.house, l.spins, l.bets = house, spinsTotal, betsTotal
	return nil
}

// Settle pays payout out of the house. It fails with ErrHouseEmpty when the
// house cannot cover it and with ErrLedgerOverflow when the payout counter
// would wrap. On error nothing is changed.
func (l *Ledger) Settle(payout domain.Amount) error {
	house, ok := l.house.Sub(payout)
	if !ok {
		return fmt.Errorf("%w: balance %s, payout %s", domain.ErrHouseEmpty, l.house, payout)
	}
	payoutTotal, ok := l.payout.Add(payout)
	if !ok {
		return fmt.Errorf("%w: %s %s + %s", domain.ErrLedgerOverflow, fieldPayout, l.payout, payout)
	}

	l.house, l.payout = house, payoutTotal
	return nil
}

// Stats returns a copy of the counters.
func (l *Ledger) Stats() domain.LedgerStats {
	return domain.LedgerStats{
		SpinsTotal:   l.spins,
		BetsTotal:    l.bets,
		HouseBalance: l.house,
		PayoutTotal:  l.payout,
	}
}
