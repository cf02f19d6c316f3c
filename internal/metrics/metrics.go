package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Settlement Metrics
var (
	SettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlementsTotal,
			Help: HelpTextSettlementsTotal,
		},
		[]string{LabelState},
	)

	SpinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSpinsTotal,
			Help: HelpTextSpinsTotal,
		},
	)

	BetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBetsTotal,
			Help: HelpTextBetsTotal,
		},
	)

	WinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWinsTotal,
			Help: HelpTextWinsTotal,
		},
	)

	StakeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStakeTotal,
			Help: HelpTextStakeTotal,
		},
		[]string{LabelAsset},
	)

	PayoutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePayoutTotal,
			Help: HelpTextPayoutTotal,
		},
		[]string{LabelAsset},
	)

	SettlementLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSettlementLatency,
			Help:    HelpTextSettlementLatency,
			Buckets: OracleLatencyBuckets,
		},
	)

	TokenDeposits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTokenDeposits,
			Help: HelpTextTokenDeposits,
		},
		[]string{LabelAsset},
	)
)

// Oracle Metrics
var (
	OracleRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameOracleRequestDuration,
			Help:    HelpTextOracleRequestDuration,
			Buckets: OracleLatencyBuckets,
		},
		[]string{LabelOutcome},
	)

	OracleQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameOracleQueueDepth,
			Help: HelpTextOracleQueueDepth,
		},
	)

	OracleRefused = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOracleRefused,
			Help: HelpTextOracleRefused,
		},
		[]string{LabelReason},
	)
)
