package metrics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Middleware records request count, latency and concurrency. Series are
// labelled by chi route pattern, so settlement ids never become labels.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		var route string
		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(seconds float64) {
			HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(seconds)
		}))

		next.ServeHTTP(ww, r)

		route = routePattern(r)
		timer.ObserveDuration()
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(statusOf(ww))).Inc()
	})
}

// statusOf treats a handler that never wrote a header as 200
func statusOf(ww middleware.WrapResponseWriter) int {
	if status := ww.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return PathUnmatched
}
