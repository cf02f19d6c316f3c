package config

import "time"

// Oracle modes
const (
	OracleModeLocal  = "local"
	OracleModeRemote = "remote"
)

// TestnetSignerSuffix marks signer account ids that sign for testnet
const TestnetSignerSuffix = ".testnet"

// Defaults
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"
	DefaultServiceName = "roulette-house"
	DefaultVersion     = "dev"

	DefaultDBName            = "roulette"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultOracleSignerID  = "v1.signer-prod.testnet"
	DefaultOracleTimeout   = 10 * time.Second
	DefaultOracleWorkers   = 4
	DefaultOracleQueueSize = 256

	DefaultMaxCallbackBudget = 30 * time.Second
	DefaultResultCacheSize   = 10000
	DefaultResultCacheTTL    = time.Hour

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Limits
const (
	// MaxCallbackBudgetLimit is the largest budget a uint8 seconds field can ask for
	MaxCallbackBudgetLimit = 255 * time.Second
	MaxAssetDecimals       = 38
)
