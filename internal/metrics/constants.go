package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Settlement metric names
const (
	MetricNameSettlementsTotal  = "roulette_settlements_total"
	MetricNameSpinsTotal        = "roulette_spins_total"
	MetricNameBetsTotal         = "roulette_bets_total"
	MetricNameWinsTotal         = "roulette_wins_total"
	MetricNameStakeTotal        = "roulette_stake_total"
	MetricNamePayoutTotal       = "roulette_payout_total"
	MetricNameSettlementLatency = "roulette_settlement_latency_seconds"
	MetricNameTokenDeposits     = "roulette_token_deposits_total"
)

// Oracle metric names
const (
	MetricNameOracleRequestDuration = "oracle_request_duration_seconds"
	MetricNameOracleQueueDepth      = "oracle_queue_depth"
	MetricNameOracleRefused         = "oracle_requests_refused_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Settlement metric help text
const (
	HelpTextSettlementsTotal  = "Settlements by final state"
	HelpTextSpinsTotal        = "Spins accepted into escrow"
	HelpTextBetsTotal         = "Bets accepted into escrow"
	HelpTextWinsTotal         = "Winning bets across resolved settlements"
	HelpTextStakeTotal        = "Stake escrowed, in whole asset units"
	HelpTextPayoutTotal       = "Winnings paid, in whole asset units"
	HelpTextSettlementLatency = "Time from escrow to resolution in seconds"
	HelpTextTokenDeposits     = "Token deposits credited, in whole token units"
)

// Oracle metric help text
const (
	HelpTextOracleRequestDuration = "Signer round trip in seconds"
	HelpTextOracleQueueDepth      = "Randomness requests waiting for a worker"
	HelpTextOracleRefused         = "Randomness requests refused before dispatch"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelState   = "state"
	LabelAsset   = "asset"
	LabelOutcome = "outcome"
	LabelReason  = "reason"
)

// Label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"

	ReasonQueueFull = "queue_full"
	ReasonStopped   = "stopped"

	// PathUnmatched labels requests no route matched
	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// OracleLatencyBuckets spans a local signer (sub-millisecond) up to a slow
// remote signer near the callback budget
var OracleLatencyBuckets = []float64{.0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
