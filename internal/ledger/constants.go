package ledger

// Counter names used in overflow errors
const (
	fieldSpins  = "spins_total"
	fieldBets   = "bets_total"
	fieldHouse  = "house_balance"
	fieldPayout = "payout_total"
)
