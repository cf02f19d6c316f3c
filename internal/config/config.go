package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIKey         string // API key for authentication
	TrustedProxies []string

	// Logging
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	// Database
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Randomness oracle
	OracleMode      string
	OracleURL       string
	OracleSignerID  string
	OracleTimeout   time.Duration
	OracleMasterKey string
	OracleWorkers   int
	OracleQueueSize int

	// Settlement
	MaxCallbackBudget   time.Duration
	HouseInitialBalance domain.Amount
	AssetDecimals       int32
	SupportedTokens     []string
	ResultCacheSize     int
	ResultCacheTTL      time.Duration

	// Event publishing
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES", nil),

		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		OracleMode:      strings.ToLower(getEnv("ORACLE_MODE", OracleModeLocal)),
		OracleURL:       getEnv("ORACLE_URL", ""),
		OracleSignerID:  getEnv("ORACLE_SIGNER_ID", DefaultOracleSignerID),
		OracleTimeout:   getEnvAsDuration("ORACLE_TIMEOUT", DefaultOracleTimeout),
		OracleMasterKey: getEnv("ORACLE_MASTER_KEY", ""),
		OracleWorkers:   getEnvAsInt("ORACLE_WORKERS", DefaultOracleWorkers),
		OracleQueueSize: getEnvAsInt("ORACLE_QUEUE_SIZE", DefaultOracleQueueSize),

		MaxCallbackBudget: getEnvAsDuration("MAX_CALLBACK_BUDGET", DefaultMaxCallbackBudget),
		AssetDecimals:     int32(getEnvAsInt("ASSET_DECIMALS", domain.DefaultAssetDecimals)),
		SupportedTokens:   getEnvAsList("SUPPORTED_TOKENS", []string{domain.DefaultSupportedToken}),
		ResultCacheSize:   getEnvAsInt("RESULT_CACHE_SIZE", DefaultResultCacheSize),
		ResultCacheTTL:    getEnvAsDuration("RESULT_CACHE_TTL", DefaultResultCacheTTL),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	house, err := domain.ParseAmount(getEnv("HOUSE_INITIAL_BALANCE", domain.DefaultHouseBalance))
	if err != nil {
		return nil, fmt.Errorf("invalid HOUSE_INITIAL_BALANCE value: %w", err)
	}
	cfg.HouseInitialBalance = house

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints and reports every problem at once
func (c *Config) Validate() error {
	var errs []error

	switch c.OracleMode {
	case OracleModeLocal:
		if c.OracleMasterKey == "" {
			errs = append(errs, errors.New("ORACLE_MASTER_KEY must be set when ORACLE_MODE=local"))
		}
	case OracleModeRemote:
		if c.OracleURL == "" {
			errs = append(errs, errors.New("ORACLE_URL must be set when ORACLE_MODE=remote"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid ORACLE_MODE %q: expected %s or %s", c.OracleMode, OracleModeLocal, OracleModeRemote))
	}

	if c.MaxCallbackBudget < time.Second || c.MaxCallbackBudget > MaxCallbackBudgetLimit {
		errs = append(errs, fmt.Errorf("MAX_CALLBACK_BUDGET must be between 1s and %s", MaxCallbackBudgetLimit))
	}
	if c.AssetDecimals < 0 || c.AssetDecimals > MaxAssetDecimals {
		errs = append(errs, fmt.Errorf("ASSET_DECIMALS must be between 0 and %d", MaxAssetDecimals))
	}
	if len(c.SupportedTokens) == 0 {
		errs = append(errs, errors.New("SUPPORTED_TOKENS must list at least one token"))
	}
	if c.OracleWorkers < 1 {
		errs = append(errs, errors.New("ORACLE_WORKERS must be at least 1"))
	}
	if c.OracleQueueSize < 1 {
		errs = append(errs, errors.New("ORACLE_QUEUE_SIZE must be at least 1"))
	}

	return errors.Join(errs...)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt falls back to the default when the value is missing or not an integer
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration falls back to the default when the value is missing or unparsable
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated value, dropping empty entries
func getEnvAsList(key string, defaultValue []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
