package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "2.0"

// RequiredEnvVars must be set regardless of oracle mode
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
	"ORACLE_MODE",
}

// modeEnvVars are the extra variables each oracle mode needs
var modeEnvVars = map[string][]string{
	OracleModeLocal:  {"ORACLE_MASTER_KEY"},
	OracleModeRemote: {"ORACLE_URL"},
}

// envWarning flags a variable that is set but looks unsafe
type envWarning struct {
	applies func() bool
	message string
}

var envWarnings = []envWarning{
	{
		applies: func() bool { return os.Getenv("DB_PASSWORD") == "change_this_secure_password" },
		message: "DB_PASSWORD appears to be using the example value - please use a secure password",
	},
	{
		applies: func() bool { return os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" },
		message: "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32",
	},
	{
		applies: func() bool {
			return oracleModeFromEnv() == OracleModeLocal && os.Getenv("ENVIRONMENT") == "prod"
		},
		message: "ORACLE_MODE=local signs with an in-process key - use a remote signer in production",
	},
	{
		applies: func() bool {
			url := os.Getenv("ORACLE_URL")
			return oracleModeFromEnv() == OracleModeRemote && strings.HasPrefix(url, "http://")
		},
		message: "ORACLE_URL uses plain http - signer responses are not authenticated in transit",
	},
	{
		applies: func() bool {
			return os.Getenv("ENVIRONMENT") == "prod" && strings.HasSuffix(os.Getenv("ORACLE_SIGNER_ID"), TestnetSignerSuffix)
		},
		message: "ORACLE_SIGNER_ID points at a testnet signer while ENVIRONMENT=prod",
	},
}

func oracleModeFromEnv() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv("ORACLE_MODE")))
}

// ValidateEnv checks the schema version and that every variable the chosen
// oracle mode needs is present
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	switch {
	case schemaVersion == "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	case schemaVersion != ExpectedEnvSchemaVersion:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	required := append([]string{}, RequiredEnvVars...)
	required = append(required, modeEnvVars[oracleModeFromEnv()]...)

	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports settings that
// work but should not reach production
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, w := range envWarnings {
		if w.applies() {
			warnings = append(warnings, w.message)
		}
	}
	return warnings, nil
}
