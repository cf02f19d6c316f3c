package payment

// DefaultTransferListLimit bounds ListTransfers when no limit is given
const DefaultTransferListLimit = 50

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgTransferRecorded  = "Native transfer recorded"
	LogMsgTokenCredited     = "Token balance credited"
	LogMsgDepositReceived   = "Token deposit received"
	LogMsgOnReceiveCalled   = "Token transfer received"
	LogMsgSpinForwarded     = "Token transfer forwarded as spin"
	LogMsgSpinRejected      = "Token spin rejected, returning deposit"
	LogMsgTokenNotSupported = "Token transfer from unsupported token"
	LogMsgPublishFailed     = "Failed to publish payment event"
)

// ============================================================================
// Error Context
// ============================================================================

const (
	ErrContextFailedToBeginTx        = "failed to begin transaction"
	ErrContextFailedToCommitTx       = "failed to commit transaction"
	ErrContextFailedToGetBalance     = "failed to get balance"
	ErrContextFailedToSetBalance     = "failed to set balance"
	ErrContextFailedToRecordTransfer = "failed to record transfer"
	ErrContextFailedToListTransfers  = "failed to list transfers"
	ErrContextSpinRejected           = "spin rejected"
)
