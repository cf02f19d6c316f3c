package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/osse101/RouletteHouse_Go/internal/logger"
)

// AuthMiddleware requires the X-API-Key header on every non-public path
func AuthMiddleware(apiKey string, proxies *TrustedProxies, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := proxies.ClientIP(r)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isPublicPath matches a public path exactly or as a directory prefix, so
// /healthz is public but /healthzz is not
func isPublicPath(path string) bool {
	for _, public := range PublicPaths {
		if strings.HasSuffix(public, "/") {
			if strings.HasPrefix(path, public) {
				return true
			}
			continue
		}
		if path == public || strings.HasPrefix(path, public+"/") {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ipActivity is one client's counters for the current window
type ipActivity struct {
	failedAuth int
	requests   int
}

// SuspiciousActivityDetector counts requests and failed logins per client IP
// over a fixed window and blocks clients above the request limit
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	clock       quartz.Clock
	activity    map[string]*ipActivity
	windowStart time.Time
}

func NewSuspiciousActivityDetector(clock quartz.Clock) *SuspiciousActivityDetector {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &SuspiciousActivityDetector{
		clock:       clock,
		activity:    make(map[string]*ipActivity),
		windowStart: clock.Now(),
	}
}

// RecordFailedAuth counts a rejected API key and alerts once the client
// reaches the alert threshold
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	a := s.entry(ip)
	a.failedAuth++
	count := a.failedAuth
	s.mu.Unlock()

	if count >= FailedAuthAlertCount {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", count)
	}
}

// RecordRequest counts a request and reports false once the client is over
// the window's limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	a := s.entry(ip)
	a.requests++
	count := a.requests
	s.mu.Unlock()

	if count <= MaxRequestsPerWindow {
		return true
	}
	if count%HighRateLogEveryRequest == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", count, "window", DetectorWindow)
	}
	return false
}

// Counts returns the client's (requests, failed auth) in the current window
func (s *SuspiciousActivityDetector) Counts(ip string) (requests, failedAuth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollWindow()
	if a, ok := s.activity[ip]; ok {
		return a.requests, a.failedAuth
	}
	return 0, 0
}

// entry returns the client's counters, starting a new window first if the
// current one has passed. Caller must hold the mutex.
func (s *SuspiciousActivityDetector) entry(ip string) *ipActivity {
	s.rollWindow()
	a, ok := s.activity[ip]
	if !ok {
		a = &ipActivity{}
		s.activity[ip] = a
	}
	return a
}

func (s *SuspiciousActivityDetector) rollWindow() {
	now := s.clock.Now()
	if now.Sub(s.windowStart) > DetectorWindow {
		s.activity = make(map[string]*ipActivity)
		s.windowStart = now
	}
}

// SecurityLoggingMiddleware enforces the per-IP request limit
func SecurityLoggingMiddleware(proxies *TrustedProxies, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(proxies.ClientIP(r)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TrustedProxies is the set of peers whose X-Forwarded-For is believed.
// Entries are single addresses or CIDR ranges.
type TrustedProxies struct {
	prefixes []netip.Prefix
}

// ParseTrustedProxies parses addresses and CIDR ranges, skipping and logging
// entries that are neither
func ParseTrustedProxies(entries []string) *TrustedProxies {
	tp := &TrustedProxies{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			tp.prefixes = append(tp.prefixes, prefix.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(entry); err == nil {
			tp.prefixes = append(tp.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		slog.Warn(LogMsgInvalidTrustedProxy, "entry", entry)
	}
	return tp
}

func (tp *TrustedProxies) trusts(ip string) bool {
	if tp == nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range tp.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the peer address, or the last X-Forwarded-For hop when
// the peer is a trusted proxy. The last hop is the one the proxy itself saw.
func (tp *TrustedProxies) ClientIP(r *http.Request) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !tp.trusts(remoteIP) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	last := strings.TrimSpace(hops[len(hops)-1])
	if _, err := netip.ParseAddr(last); err != nil {
		return remoteIP
	}
	return last
}

var securityHeaders = [][2]string{
	{HeaderContentType, HeaderValueNoSniff},
	{HeaderFrameOptions, HeaderValueSameOrigin},
	{HeaderXSSProtection, HeaderValueXSSBlock},
	{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range securityHeaders {
				w.Header().Set(h[0], h[1])
			}
			if strings.HasPrefix(r.URL.Path, APIPathPrefix) {
				w.Header().Set(HeaderCacheControl, HeaderValueNoStore)
			}
			next.ServeHTTP(w, r)
		})
	}
}
