package settlement

import "time"

// Defaults applied when Config leaves a field zero
const (
	DefaultMaxCallbackBudget = 30 * time.Second
	DefaultResultCacheSize   = 10000
	DefaultResultCacheTTL    = time.Hour
)

// MaxBettorLength bounds the account id used as the signing path
const MaxBettorLength = 64

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgSpinCalled          = "Spin called"
	LogMsgSpinAccepted        = "Spin accepted, awaiting randomness"
	LogMsgRequestRefused      = "Randomness request refused"
	LogMsgResolveCalled       = "Resolve called"
	LogMsgOracleCallbackFail  = "oracle callback failed"
	LogMsgSettlementResolved  = "Settlement resolved"
	LogMsgSettlementAborted   = "Settlement aborted on ledger error"
	LogMsgPaymentFailed       = "Payout payment failed"
	LogMsgContinuationFailed  = "Settlement continuation returned error"
	LogMsgStalePending        = "Pending settlement still awaiting randomness"
	LogMsgStalePendingSummary = "Pending settlements found at startup"
	LogMsgPublishFailed       = "Failed to publish settlement event"
)

// ============================================================================
// Error Context
// ============================================================================

const (
	ErrContextFailedToBeginTx       = "failed to begin transaction"
	ErrContextFailedToCommitTx      = "failed to commit transaction"
	ErrContextFailedToLoadLedger    = "failed to load ledger"
	ErrContextFailedToSaveLedger    = "failed to save ledger"
	ErrContextFailedToInsertPending = "failed to insert pending settlement"
	ErrContextFailedToDeletePending = "failed to delete pending settlement"
	ErrContextFailedToGetPending    = "failed to get pending settlement"
	ErrContextFailedToGenerateSeed  = "failed to generate seed"
	ErrContextEscrow                = "escrow rejected"
	ErrContextSettle                = "settlement aborted"
)
