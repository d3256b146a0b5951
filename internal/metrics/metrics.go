// Package metrics provides Prometheus metrics for the tier service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Resolutions tracks resolver calls by outcome and winning strategy
	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "psutier",
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Total number of name resolutions by outcome and strategy",
		},
		[]string{"outcome", "strategy"},
	)

	// BatchRows tracks rows processed by batch uploads
	BatchRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "psutier",
			Subsystem: "batch",
			Name:      "rows_total",
			Help:      "Total number of batch rows by outcome",
		},
		[]string{"outcome"},
	)

	// BatchDuration tracks whole-file batch processing time
	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "psutier",
			Subsystem: "batch",
			Name:      "duration_seconds",
			Help:      "Duration of batch file resolution in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	// TableReloads tracks reference table reloads by status
	TableReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "psutier",
			Subsystem: "table",
			Name:      "reloads_total",
			Help:      "Total number of reference table reloads by status",
		},
		[]string{"status"},
	)

	// TableEntries is the number of entries in the current table
	TableEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "psutier",
			Subsystem: "table",
			Name:      "entries",
			Help:      "Number of series entries in the loaded reference table",
		},
	)

	// HTTPRequestsTotal tracks inbound HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "psutier",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks inbound HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "psutier",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of inbound HTTP requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
)

// ObserveResolution records one resolver call.
func ObserveResolution(outcome, strategy string) {
	if strategy == "" {
		strategy = "none"
	}
	Resolutions.WithLabelValues(outcome, strategy).Inc()
}
