// Package metrics holds the storefront's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, path and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	// CatalogQueries counts catalog searches by price bucket and sort key.
	CatalogQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_queries_total",
			Help: "Total number of catalog queries",
		},
		[]string{"price", "sort"},
	)
	// CatalogResults observes how many products a query matched.
	CatalogResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_query_results",
			Help:    "Number of products matched per catalog query",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
	)
	// SourceFailures counts product source reads that failed and were served as an empty catalog.
	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_source_failures_total",
			Help: "Total number of failed product source reads",
		},
		[]string{"source"},
	)
)
