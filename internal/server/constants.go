package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "SECURITY ALERT: Blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting      = "Server starting"
	LogMsgRequestStarted      = "Request started"
	LogMsgRequestCompleted    = "Request completed"
	LogMsgRequestHeaders      = "Request headers"
	LogMsgAuthFailed          = "Authentication failed"
	LogMsgInvalidTrustedProxy = "Ignoring invalid trusted proxy entry"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderCacheControl   = "Cache-Control"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
	HeaderValueNoStore              = "no-store"
)

// Abuse detection thresholds, counted per IP over one window
const (
	DetectorWindow          = 5 * time.Minute
	FailedAuthAlertCount    = 5
	MaxRequestsPerWindow    = 1000
	HighRateLogEveryRequest = 100
)

// Server limits
const (
	MaxRequestBodyBytes = 1 << 20
	ReadHeaderTimeout   = 5 * time.Second
)

// APIPathPrefix is the versioned API root
const APIPathPrefix = "/api/v1/"

// Public paths that bypass authentication. A trailing slash matches the
// whole subtree.
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
