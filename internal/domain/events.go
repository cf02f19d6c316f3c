package domain

// Event type constants published on the event bus
const (
	// EventTypeSettlementAccepted is published after a batch is escrowed and its
	// randomness request has been handed to the oracle worker
	EventTypeSettlementAccepted = "settlement.accepted"

	// EventTypeSettlementResolved is published when a batch is evaluated and paid
	EventTypeSettlementResolved = "settlement.resolved"

	// EventTypeSettlementFailed is published when the oracle call failed and the
	// batch completed with the neutral result
	EventTypeSettlementFailed = "settlement.failed"

	// EventTypeSettlementAborted is published when resolution hit a ledger
	// invariant and was rolled back
	EventTypeSettlementAborted = "settlement.aborted"

	// EventTypeTokenDeposited is published when a token transfer is credited
	EventTypeTokenDeposited = "token.deposited"
)
