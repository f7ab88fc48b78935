package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_engine_calculations_total",
			Help: "Total number of successful worksheet calculations",
		},
		[]string{"strategy"},
	)

	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_engine_calculation_errors_total",
			Help: "Total number of rejected worksheet calculations",
		},
		[]string{"strategy", "code"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deal_engine_calculation_duration_seconds",
			Help:    "Duration of worksheet calculations in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"strategy"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_engine_cache_hits_total",
			Help: "Total number of worksheet results served from cache",
		},
		[]string{"strategy"},
	)

	ComparisonOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_engine_comparison_operations_total",
			Help: "Total number of comparison set operations",
		},
		[]string{"operation", "outcome"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deal_engine_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
