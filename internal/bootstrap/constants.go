package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgStartingService     = "Starting roulette house"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgSettlementAuditInitialized     = "Settlement audit logger initialized"
	LogMsgSettlementNotResolved          = "Settlement did not resolve"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
)

// =============================================================================
// House Initialization
// =============================================================================

const (
	LogMsgSignerLocal        = "Using local development signer"
	LogMsgSignerRemote       = "Using remote signer"
	LogMsgHouseLedgerReady   = "House ledger ready"
	LogMsgStalePendingFound  = "Pending settlements left from a previous run"
	ErrMsgFailedCreateSigner = "failed to create signer"
	ErrMsgUnknownOracleMode  = "unknown oracle mode"
	ErrMsgFailedEnsureLedger = "failed to initialize house ledger"
	ErrMsgFailedReadStats    = "failed to read house ledger"
	ErrMsgFailedReportStale  = "failed to list pending settlements"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownOracle         = "Shutting down oracle worker..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgOracleShutdownFailed       = "Oracle worker shutdown failed"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
