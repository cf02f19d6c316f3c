package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/osse101/RouletteHouse_Go/internal/database"
)

const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"

	readinessTimeout = 2 * time.Second
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker defines the interface for components that can report health
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}

// HandleReadyz provides a readiness check that validates database connectivity
// and any additional named components
// @Summary Readiness check
// @Description Returns OK if the database is reachable and the oracle accepts requests
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool, checkers map[string]HealthChecker) http.HandlerFunc {
	names := make([]string, 0, len(checkers))
	for name := range checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if dbPool == nil {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  HealthStatusUnavailable,
				Message: "database not configured",
			})
			return
		}

		if err := dbPool.Ping(ctx); err != nil {
			slog.Error(LogMsgReadinessFailed, "component", "database", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  HealthStatusUnavailable,
				Message: "database connection failed",
			})
			return
		}

		for _, name := range names {
			if err := checkers[name].CheckHealth(ctx); err != nil {
				slog.Error(LogMsgReadinessFailed, "component", name, "error", err)
				respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
					Status:  HealthStatusUnavailable,
					Message: name + " unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}
