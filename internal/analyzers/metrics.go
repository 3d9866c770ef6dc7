package analyzers

import (
	"serverlog-analyser/internal/shared/metrics"
)

const (
	lineMatched   = "matched"
	lineUnmatched = "unmatched"

	outcomeDone      = "done"
	outcomeCancelled = "cancelled"
	outcomeFailed    = "failed"
)

var (
	metricLinesProcessedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "lines_processed_total",
		},
		[]string{"outcome"},
	)

	metricRunDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "run_duration_seconds",
			Buckets:   metrics.ExponentialBuckets(0.01, 4, 10),
		},
		[]string{"outcome"},
	)
)
