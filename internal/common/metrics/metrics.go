// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssignmentsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assignments_generated_total",
			Help: "Total number of successful assignment generation runs",
		},
	)

	ReviewsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_created_total",
			Help: "Total number of review records created by generation",
		},
	)

	ReviewsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_completed_total",
			Help: "Total number of reviews marked complete",
		},
	)

	RequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_failed_total",
			Help: "Total number of failed API requests by operation and error code",
		},
		[]string{"operation", "error_code"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "request_duration_seconds",
			Help: "Duration of API request processing in seconds",
		},
		[]string{"operation"},
	)

	DanglingReviewsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dangling_reviews_skipped_total",
			Help: "Reviews skipped during aggregation because their applicant no longer exists",
		},
	)

	ProgressCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_cache_requests_total",
			Help: "Progress report cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
