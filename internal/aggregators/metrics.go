package aggregators

import (
	"serverlog-analyser/internal/shared/metrics"
)

const (
	dimensionPath           = "path"
	dimensionNormalizedPath = "normalized_path"
	dimensionIP             = "ip"
	dimensionUserAgent      = "user_agent"
)

// metricDistinctKeys records, per finalized run, how many distinct keys each
// frequency map held before truncation. Runs whose normalized_path count stays
// above analysis.aggregated_limit are the ones losing tail entries.
var (
	metricDistinctKeys = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "distinct_keys",
			Buckets:   metrics.ExponentialBuckets(1, 4, 10),
		},
		[]string{"dimension"},
	)
)
