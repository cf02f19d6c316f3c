package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{"unset", "", false, 42},
		{"valid", "100", true, 100},
		{"negative", "-10", true, -10},
		{"zero", "0", true, 0},
		{"not a number", "not-a-number", true, 42},
		{"float", "42.5", true, 42},
		{"empty", "", true, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT_VAR", tt.value)
			if !tt.set {
				clearVar(t, "TEST_INT_VAR")
			}
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	const fallback = 5 * time.Minute

	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", fallback},
		{"10m", 10 * time.Minute},
		{"30s", 30 * time.Second},
		{"1h30m15s", time.Hour + 30*time.Minute + 15*time.Second},
		{"500ms", 500 * time.Millisecond},
		{"250us", 250 * time.Microsecond},
		{"10", fallback},
		{"soon", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_DURATION_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION_VAR", fallback))
		})
	}
}

func TestGetEnvAsList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  []string
	}{
		{"unset keeps default", "", false, []string{"usdc"}},
		{"set but empty clears", "", true, nil},
		{"trims and drops blanks", " usdc, ,dai ,", true, []string{"usdc", "dai"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_LIST_VAR", tt.value)
			if !tt.set {
				clearVar(t, "TEST_LIST_VAR")
			}
			assert.Equal(t, tt.want, getEnvAsList("TEST_LIST_VAR", []string{"usdc"}))
		})
	}
}

func TestLoad_DatabasePoolConfig(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		wantConns    int
		wantIdle     time.Duration
		wantLifetime time.Duration
	}{
		{
			name:         "defaults",
			wantConns:    DefaultDBMaxConns,
			wantIdle:     DefaultDBMaxConnIdleTime,
			wantLifetime: DefaultDBMaxConnLifetime,
		},
		{
			name: "custom",
			env: map[string]string{
				"DB_MAX_CONNS": "50", "DB_MAX_CONN_IDLE_TIME": "10m", "DB_MAX_CONN_LIFETIME": "1h",
			},
			wantConns:    50,
			wantIdle:     10 * time.Minute,
			wantLifetime: time.Hour,
		},
		{
			name: "invalid values fall back",
			env: map[string]string{
				"DB_MAX_CONNS": "lots", "DB_MAX_CONN_IDLE_TIME": "invalid", "DB_MAX_CONN_LIFETIME": "bad-duration",
			},
			wantConns:    DefaultDBMaxConns,
			wantIdle:     DefaultDBMaxConnIdleTime,
			wantLifetime: DefaultDBMaxConnLifetime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv("API_KEY", "test-key")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.wantConns, cfg.DBMaxConns)
			assert.Equal(t, tt.wantIdle, cfg.DBMaxConnIdleTime)
			assert.Equal(t, tt.wantLifetime, cfg.DBMaxConnLifetime)
		})
	}
}

// clearVar unsets key for the rest of the test; t.Setenv first so the
// previous value is restored afterwards
func clearVar(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
