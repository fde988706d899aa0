// Package metrics holds the Prometheus collectors shared across the
// application. Collectors register against the default registry so the
// /metrics endpoint can serve them with promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts served HTTP requests by route, method and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finpulse_http_requests_total",
		Help: "Total number of HTTP requests served.",
	}, []string{"path", "method", "status"})

	// RequestDuration tracks request latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "finpulse_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method"})

	// DatasetLoads counts successful dataset loads by input format.
	DatasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finpulse_dataset_loads_total",
		Help: "Total number of dataset files read from disk.",
	}, []string{"format"})

	// DatasetLoadFailures counts failed dataset loads.
	DatasetLoadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finpulse_dataset_load_failures_total",
		Help: "Total number of dataset loads that failed.",
	})

	// DatasetCacheHits counts dataset reads served from the in-memory cache.
	DatasetCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finpulse_dataset_cache_hits_total",
		Help: "Total number of dataset reads served from cache.",
	})
)
