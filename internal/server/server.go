package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/RouletteHouse_Go/docs"
	"github.com/osse101/RouletteHouse_Go/internal/database"
	"github.com/osse101/RouletteHouse_Go/internal/handler"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
	"github.com/osse101/RouletteHouse_Go/internal/metrics"
	"github.com/osse101/RouletteHouse_Go/internal/payment"
	"github.com/osse101/RouletteHouse_Go/internal/settlement"
)

// Options carries everything the router needs
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	AssetDecimals  int32
	Clock          quartz.Clock

	DBPool      database.Pool
	Settlements settlement.Service
	Payments    payment.Service
	Receiver    handler.Receiver
	Oracle      handler.HealthChecker
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route table with the full middleware stack
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(opts.Clock)
	proxies := ParseTrustedProxies(opts.TrustedProxies)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, proxies, detector))
	r.Use(SecurityLoggingMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	checkers := map[string]handler.HealthChecker{}
	if opts.Oracle != nil {
		checkers["oracle"] = opts.Oracle
	}
	r.Get("/readyz", handler.HandleReadyz(opts.DBPool, checkers))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	rouletteHandler := handler.NewRouletteHandler(opts.Settlements, opts.AssetDecimals)
	tokenHandler := handler.NewTokenHandler(opts.Receiver, opts.Payments)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/roulette", func(r chi.Router) {
			r.Post("/spin", rouletteHandler.HandleSpin)
			r.Get("/settlements/{"+handler.URLParamSettlementID+"}", rouletteHandler.HandleGetSettlement)
			r.Get("/stats", rouletteHandler.HandleStats)
		})

		r.Route("/token", func(r chi.Router) {
			r.Post("/on-receive", tokenHandler.HandleOnReceive)
			r.Get("/balance", tokenHandler.HandleBalance)
		})

		r.Get("/payments/transfers", tokenHandler.HandleListTransfers)
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// quietPaths are polled by probes and scrapers and are not request-logged
var quietPaths = []string{"/healthz", "/readyz", "/metrics"}

func isQuietPath(path string) bool {
	for _, p := range quietPaths {
		if path == p {
			return true
		}
	}
	return false
}

// redactHeaders copies h with credential headers replaced by RedactedValue
func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
