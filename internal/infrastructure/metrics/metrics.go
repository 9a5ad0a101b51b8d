package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Product search metrics - using explicit registration
var (
	// Request counters
	RequestsTotal *prometheus.CounterVec

	// Request duration histogram
	RequestDuration *prometheus.HistogramVec

	// Outcome of each search-and-summarize call
	SearchOutcomesTotal *prometheus.CounterVec

	// Upstream call counters and latency
	UpstreamCallsTotal      *prometheus.CounterVec
	UpstreamLatency         *prometheus.HistogramVec
	UpstreamRetriesTotal    *prometheus.CounterVec
	CircuitBreakerState     *prometheus.GaugeVec
	GenerationTokensTotal   *prometheus.CounterVec
	SearchPayloadBytesTotal prometheus.Counter
)

// init creates and registers all metrics with the default registry
func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "product_search",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "product_search",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "route"},
	)

	SearchOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "product_search",
			Name:      "outcomes_total",
			Help:      "Search-and-summarize results by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "product_search",
			Name:      "upstream_calls_total",
			Help:      "Total calls to upstream providers",
		},
		[]string{"provider", "status"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "product_search",
			Name:      "upstream_latency_seconds",
			Help:      "Upstream provider response time in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	UpstreamRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "product_search",
			Name:      "upstream_retries_total",
			Help:      "Retried upstream calls",
		},
		[]string{"provider"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "jan",
			Subsystem: "product_search",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 0.5=half-open, 1=open)",
		},
		[]string{"provider"},
	)

	GenerationTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "product_search",
			Name:      "generation_tokens_total",
			Help:      "Tokens reported by the generation provider",
		},
		[]string{"model", "kind"},
	)

	SearchPayloadBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "product_search",
			Name:      "search_payload_bytes_total",
			Help:      "Bytes of search payload embedded into prompts",
		},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(SearchOutcomesTotal)
	prometheus.MustRegister(UpstreamCallsTotal)
	prometheus.MustRegister(UpstreamLatency)
	prometheus.MustRegister(UpstreamRetriesTotal)
	prometheus.MustRegister(CircuitBreakerState)
	prometheus.MustRegister(GenerationTokensTotal)
	prometheus.MustRegister(SearchPayloadBytesTotal)
}

// RecordRequest records an HTTP request
func RecordRequest(method, route, status string, durationSec float64) {
	if route == "" {
		route = "unmatched"
	}
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(durationSec)
}

// RecordOutcome records how a search-and-summarize call ended
func RecordOutcome(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	SearchOutcomesTotal.WithLabelValues(outcome).Inc()
}

// RecordUpstreamCall records a single upstream attempt
func RecordUpstreamCall(provider, status string, durationSec float64) {
	if status == "" {
		status = "unknown"
	}
	UpstreamCallsTotal.WithLabelValues(provider, status).Inc()
	UpstreamLatency.WithLabelValues(provider).Observe(durationSec)
}

// RecordRetry records a retried upstream call
func RecordRetry(provider string) {
	UpstreamRetriesTotal.WithLabelValues(provider).Inc()
}

// SetCircuitBreakerState sets the circuit breaker state
func SetCircuitBreakerState(provider string, state string) {
	var val float64
	switch state {
	case "closed":
		val = 0.0
	case "half-open":
		val = 0.5
	case "open":
		val = 1.0
	}
	CircuitBreakerState.WithLabelValues(provider).Set(val)
}

// RecordGenerationTokens records token usage reported by the generation provider
func RecordGenerationTokens(model string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		GenerationTokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		GenerationTokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
}

// RecordSearchPayload records the size of a search payload
func RecordSearchPayload(bytes int) {
	if bytes <= 0 {
		return
	}
	SearchPayloadBytesTotal.Add(float64(bytes))
}
