package postgres

// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
const PgErrorCodeUniqueViolation = "23505"

// houseLedgerID is the key of the single ledger row
const houseLedgerID = 1

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Ledger Operations
const (
	ErrMsgFailedToEnsureLedger = "failed to ensure house ledger"
	ErrMsgFailedToGetLedger    = "failed to get house ledger"
	ErrMsgFailedToLockLedger   = "failed to lock house ledger"
	ErrMsgFailedToSaveLedger   = "failed to save house ledger"
	ErrMsgLedgerNotInitialized = "house ledger not initialized"
)

// Error Messages - Pending Settlement Operations
const (
	ErrMsgFailedToInsertPending  = "failed to insert pending settlement"
	ErrMsgFailedToGetPending     = "failed to get pending settlement"
	ErrMsgFailedToListPending    = "failed to list pending settlements"
	ErrMsgFailedToDeletePending  = "failed to delete pending settlement"
	ErrMsgFailedToMarshalBatch   = "failed to marshal batch"
	ErrMsgFailedToUnmarshalBatch = "failed to unmarshal batch"
	ErrMsgDuplicateSettlement    = "duplicate settlement id"
)

// Error Messages - Account Operations
const (
	ErrMsgFailedToGetBalance     = "failed to get balance"
	ErrMsgFailedToSetBalance     = "failed to set balance"
	ErrMsgFailedToRecordTransfer = "failed to record transfer"
	ErrMsgFailedToListTransfers  = "failed to list transfers"
)

// Error Messages - Amount Conversion
const (
	ErrMsgInvalidStoredAmount = "invalid stored amount"
)
