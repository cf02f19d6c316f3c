package domain

// SettlementAcceptedPayload is the event payload for settlement.accepted events
type SettlementAcceptedPayload struct {
	SettlementID string `json:"settlement_id"`
	Bettor       string `json:"bettor"`
	Asset        string `json:"asset"`
	Stake        Amount `json:"stake"`
	Spins        int    `json:"spins"`
	Bets         int    `json:"bets"`
	Timestamp    int64  `json:"timestamp"`
}

// SettlementResolvedPayload is the event payload for settlement.resolved events
type SettlementResolvedPayload struct {
	SettlementID string `json:"settlement_id"`
	Bettor       string `json:"bettor"`
	Asset        string `json:"asset"`
	Stake        Amount `json:"stake"`
	Payout       Amount `json:"payout"`
	Bets         int    `json:"bets"`
	Wins         int    `json:"wins"`
	LatencyMs    int64  `json:"latency_ms"`
	Timestamp    int64  `json:"timestamp"`
}

// SettlementFailedPayload is the event payload for settlement.failed and
// settlement.aborted events
type SettlementFailedPayload struct {
	SettlementID string `json:"settlement_id"`
	Bettor       string `json:"bettor"`
	Stake        Amount `json:"stake"`
	Reason       string `json:"reason"`
	Timestamp    int64  `json:"timestamp"`
}

// TokenDepositedPayload is the event payload for token.deposited events
type TokenDepositedPayload struct {
	TokenID   string `json:"token_id"`
	Account   string `json:"account"`
	Amount    Amount `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}
