package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search gateway Prometheus metrics.
var (
	AssistantRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentsearch",
			Name:      "assistant_requests_total",
			Help:      "Total number of language-understanding requests",
		},
		[]string{"provider", "status"}, // status: ok / error / timeout
	)

	AssistantRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "talentsearch",
			Name:      "assistant_request_duration_seconds",
			Help:      "Language-understanding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 8, 10},
		},
		[]string{"provider"},
	)

	FallbackExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentsearch",
			Name:      "fallback_extractions_total",
			Help:      "Queries whose entities came from the vocabulary extractor",
		},
		[]string{"reason"}, // unavailable / empty / disabled
	)

	RateLimitRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "talentsearch",
			Name:      "ratelimit_rejected_total",
			Help:      "Requests rejected by the per-client limiter",
		},
	)

	RateLimitStoreErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "talentsearch",
			Name:      "ratelimit_store_errors_total",
			Help:      "Limiter store failures (request admitted)",
		},
	)

	SearchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "talentsearch",
			Name:      "search_results_returned",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		},
		[]string{"result_type"},
	)

	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "talentsearch",
			Name:      "store_query_duration_seconds",
			Help:      "Datastore query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"shape", "status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers the gateway metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(AssistantRequestsTotal)
	prometheus.MustRegister(AssistantRequestDuration)
	prometheus.MustRegister(FallbackExtractionsTotal)
	prometheus.MustRegister(RateLimitRejectedTotal)
	prometheus.MustRegister(RateLimitStoreErrorsTotal)
	prometheus.MustRegister(SearchResultsReturned)
	prometheus.MustRegister(StoreQueryDuration)
	searchMetricsRegistered = true
}
