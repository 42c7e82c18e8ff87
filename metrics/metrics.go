// Package metrics provides Prometheus metrics for the Wikipedia MCP server.
// It tracks tool calls, Wikipedia API calls, pagination and error rates.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "wikipedia_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures tool call latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing tool calls
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// WikiAPILatency measures Wikipedia API call latency by operation
	WikiAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "wiki_api_latency_seconds",
		Help:      "Wikipedia API call latency by operation",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// WikiAPIRequestsTotal counts Wikipedia API requests
	WikiAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_api_requests_total",
		Help:      "Total Wikipedia API requests by operation and status",
	}, []string{"operation", "status"})

	// WikiAPIErrors counts Wikipedia API errors by error kind
	WikiAPIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_api_errors_total",
		Help:      "Wikipedia API errors by operation and error kind",
	}, []string{"operation", "kind"})

	// PagesFetched counts result pages followed through continuation
	PagesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "pages_fetched_total",
		Help:      "Result pages fetched by paginated operations",
	}, []string{"operation"})

	// AggregatedResults observes the size of fully aggregated result sets
	AggregatedResults = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "aggregated_results",
		Help:      "Number of items returned by aggregated paginated operations",
		Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
	}, []string{"operation"})

	// CircuitOpenRejections counts requests rejected by the circuit breaker
	CircuitOpenRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "circuit_open_rejections_total",
		Help:      "Requests rejected because the circuit breaker was open",
	})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})
)

// RecordRequest records a completed tool call with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	RequestsTotal.WithLabelValues(tool, status(success)).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a Wikipedia API call. errorKind is empty on success.
func RecordAPICall(operation string, duration float64, success bool, errorKind string) {
	WikiAPIRequestsTotal.WithLabelValues(operation, status(success)).Inc()
	WikiAPILatency.WithLabelValues(operation).Observe(duration)
	if errorKind != "" {
		WikiAPIErrors.WithLabelValues(operation, errorKind).Inc()
	}
}

// RecordPage records one fetched result page for a paginated operation
func RecordPage(operation string) {
	PagesFetched.WithLabelValues(operation).Inc()
}

// RecordAggregate records the final size of an aggregated result set
func RecordAggregate(operation string, items int) {
	AggregatedResults.WithLabelValues(operation).Observe(float64(items))
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
