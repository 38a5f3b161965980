// Package webhook exposes manifest validation as an HTTP service.
package webhook

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wasmpod_validations_total",
			Help: "Total number of manifest validations",
		},
		[]string{"verdict"},
	)

	validationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wasmpod_validation_duration_seconds",
			Help:    "Manifest validation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"verdict"},
	)

	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wasmpod_http_requests_total",
			Help: "Total number of HTTP requests received",
		},
		[]string{"method", "path", "status"},
	)
)

// RecordValidation records one validation outcome.
func RecordValidation(verdict string, duration time.Duration) {
	validationsTotal.WithLabelValues(verdict).Inc()
	validationDuration.WithLabelValues(verdict).Observe(duration.Seconds())
}
