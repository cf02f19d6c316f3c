package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Submission errors
	ErrMsgTooManySpins   = "too many spins"
	ErrMsgEmptyBatch     = "batch must contain at least one bet per spin"
	ErrMsgIllegalBet     = "illegal bet"
	ErrMsgStakeMismatch  = "deposit != bet amount"
	ErrMsgInvalidAmount  = "invalid amount"
	ErrMsgInvalidInput   = "invalid input"
	ErrMsgInvalidBettor  = "invalid bettor"
	ErrMsgInvalidBudget  = "invalid callback budget"
	ErrMsgUnknownAsset   = "unknown payout asset"
	ErrMsgRequestRefused = "randomness request refused"

	// Ledger errors
	ErrMsgLedgerOverflow = "ledger overflow"
	ErrMsgHouseEmpty     = "house empty"
	ErrMsgPayoutOverflow = "payout overflow"

	// Oracle errors
	ErrMsgOracleFailed         = "oracle request failed"
	ErrMsgUnsupportedDomain    = "unsupported signature domain"
	ErrMsgMalformedSignature   = "malformed signature response"
	ErrMsgInsufficientEntropy  = "not enough random bytes for batch"
	ErrMsgSettlementNotFound   = "settlement not found"
	ErrMsgSettlementNotPending = "settlement is not awaiting randomness"
	ErrMsgOracleQueueFull      = "oracle request queue is full"
	ErrMsgOracleStopped        = "oracle worker is stopped"
	ErrMsgBudgetExceeded       = "callback budget exceeded"

	// Payment errors
	ErrMsgTokenNotSupported  = "token not supported"
	ErrMsgInsufficientFunds  = "insufficient funds"
	ErrMsgPaymentFailed      = "payment failed"
	ErrMsgInvalidTransferMsg = "invalid transfer message"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Submission errors
	ErrTooManySpins   = errors.New(ErrMsgTooManySpins)
	ErrEmptyBatch     = errors.New(ErrMsgEmptyBatch)
	ErrIllegalBet     = errors.New(ErrMsgIllegalBet)
	ErrStakeMismatch  = errors.New(ErrMsgStakeMismatch)
	ErrInvalidAmount  = errors.New(ErrMsgInvalidAmount)
	ErrInvalidInput   = errors.New(ErrMsgInvalidInput)
	ErrInvalidBettor  = errors.New(ErrMsgInvalidBettor)
	ErrInvalidBudget  = errors.New(ErrMsgInvalidBudget)
	ErrUnknownAsset   = errors.New(ErrMsgUnknownAsset)
	ErrRequestRefused = errors.New(ErrMsgRequestRefused)

	// Ledger errors are fatal for the operation that hit them
	ErrLedgerOverflow = errors.New(ErrMsgLedgerOverflow)
	ErrHouseEmpty     = errors.New(ErrMsgHouseEmpty)
	ErrPayoutOverflow = errors.New(ErrMsgPayoutOverflow)

	// Oracle errors
	ErrOracleFailed         = errors.New(ErrMsgOracleFailed)
	ErrUnsupportedDomain    = errors.New(ErrMsgUnsupportedDomain)
	ErrMalformedSignature   = errors.New(ErrMsgMalformedSignature)
	ErrInsufficientEntropy  = errors.New(ErrMsgInsufficientEntropy)
	ErrSettlementNotFound   = errors.New(ErrMsgSettlementNotFound)
	ErrSettlementNotPending = errors.New(ErrMsgSettlementNotPending)
	ErrOracleQueueFull      = errors.New(ErrMsgOracleQueueFull)
	ErrOracleStopped        = errors.New(ErrMsgOracleStopped)
	ErrBudgetExceeded       = errors.New(ErrMsgBudgetExceeded)

	// Payment errors
	ErrTokenNotSupported  = errors.New(ErrMsgTokenNotSupported)
	ErrInsufficientFunds  = errors.New(ErrMsgInsufficientFunds)
	ErrPaymentFailed      = errors.New(ErrMsgPaymentFailed)
	ErrInvalidTransferMsg = errors.New(ErrMsgInvalidTransferMsg)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)

// IsLedgerFatal reports whether err is a ledger invariant violation.
func IsLedgerFatal(err error) bool {
	return errors.Is(err, ErrLedgerOverflow) ||
		errors.Is(err, ErrHouseEmpty) ||
		errors.Is(err, ErrPayoutOverflow)
}
