package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RouletteHouse_Go/internal/database"
	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

func TestHandleHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	healthy := checkerFunc(func(context.Context) error { return nil })
	stopped := checkerFunc(func(context.Context) error { return domain.ErrOracleStopped })

	tests := []struct {
		name        string
		pingErr     error
		noPool      bool
		checkers    map[string]HealthChecker
		wantStatus  int
		wantMessage string
	}{
		{name: "database reachable", wantStatus: http.StatusOK},
		{name: "no pool configured", noPool: true, wantStatus: http.StatusServiceUnavailable, wantMessage: "database not configured"},
		{name: "ping fails", pingErr: assert.AnError, wantStatus: http.StatusServiceUnavailable, wantMessage: "database connection failed"},
		{name: "ping times out", pingErr: context.DeadlineExceeded, wantStatus: http.StatusServiceUnavailable, wantMessage: "database connection failed"},
		{name: "connection refused", pingErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable, wantMessage: "database connection failed"},
		{
			name:       "oracle healthy",
			checkers:   map[string]HealthChecker{"oracle": healthy},
			wantStatus: http.StatusOK,
		},
		{
			name:        "oracle stopped",
			checkers:    map[string]HealthChecker{"oracle": stopped},
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "oracle unavailable",
		},
		{
			name:        "first failing component in name order is reported",
			checkers:    map[string]HealthChecker{"zeta": stopped, "alpha": stopped, "oracle": healthy},
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "alpha unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pool database.Pool
			if !tt.noPool {
				mockDB := &MockDBPool{}
				mockDB.On("Ping", mock.Anything).Return(tt.pingErr)
				pool = mockDB
				defer mockDB.AssertExpectations(t)
			}

			w := httptest.NewRecorder()
			HandleReadyz(pool, tt.checkers).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp HealthResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, HealthStatusOK, resp.Status)
			} else {
				assert.Equal(t, HealthStatusUnavailable, resp.Status)
			}
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestHandleVersion(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })

	tests := []struct {
		name     string
		build    string
		env      string
		expected string
	}{
		{"build flag wins", "1.4.2", "9.9.9", "1.4.2"},
		{"environment fallback", "dev", "2.0.0", "2.0.0"},
		{"default", "", "", "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.build
			t.Setenv("VERSION", tt.env)

			w := httptest.NewRecorder()
			HandleVersion().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

			require.Equal(t, http.StatusOK, w.Code)
			var info VersionInfo
			require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
			assert.Equal(t, tt.expected, info.Version)
			assert.Equal(t, runtime.Version(), info.GoVersion)
		})
	}
}
