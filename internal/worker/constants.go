package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Oracle Worker
// ============================================================================

// Log messages for oracle worker operations
const (
	LogMsgOracleRequestQueued    = "Randomness request queued"
	LogMsgOracleRequestRefused   = "Randomness request refused"
	LogMsgOracleSignFailed       = "Signer request failed"
	LogMsgOracleBudgetExceeded   = "Randomness not delivered within callback budget"
	LogMsgOracleRequestAbandoned = "Randomness request abandoned at shutdown"
	LogMsgOracleShuttingDown     = "Oracle worker shutting down"
)

const oracleWorkerName = "oracle worker"

// Defaults for NewOracleWorker
const (
	DefaultOracleWorkers   = 4
	DefaultOracleQueueSize = 256
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
