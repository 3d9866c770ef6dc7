package ingestors

import (
	"serverlog-analyser/internal/shared/metrics"
)

var (
	metricUploadIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "upload_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricUploadBytesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "upload_bytes_total",
		},
		[]string{"source"},
	)
)
