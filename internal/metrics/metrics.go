// Package metrics defines prometheus metrics to expose
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scriptura_api_generation_duration_seconds",
			Help:    "Total time taken for provider generations in seconds",
			Buckets: []float64{1, 2.5, 5, 10, 15, 20, 25, 30, 40, 50, 75, 100, 150},
		},
		[]string{"intent"},
	)

	GenerationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scriptura_api_generation_count_total",
			Help: "Total number of generation attempts processed",
		},
		[]string{"intent", "status"},
	)

	CreditsDebited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scriptura_api_credits_debited_total",
			Help: "Total credits debited from users",
		},
		[]string{"intent"},
	)

	CreditsRefunded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scriptura_api_credits_refunded_total",
			Help: "Total credits refunded after provider failures",
		},
		[]string{"intent"},
	)

	RefundFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scriptura_api_refund_failures_total",
			Help: "Refund writes that failed and need manual reconciliation",
		},
		[]string{"intent"},
	)

	InsufficientCredits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scriptura_api_insufficient_credits_total",
			Help: "Generation attempts rejected for lack of credits",
		},
		[]string{"intent"},
	)

	DailyVerseCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scriptura_api_daily_verse_cache_total",
			Help: "Daily verse lookups by cache outcome",
		},
		[]string{"outcome"},
	)

	ResponseCodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scriptura_api_status_code",
			Help: "Status Codes",
		},
		[]string{"path", "status_code"},
	)
)
