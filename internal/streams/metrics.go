package streams

import (
	"serverlog-analyser/internal/shared/metrics"
)

var (
	streamJobDispatch = "job_dispatch"

	metricJobDispatchProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "job_dispatch_published_total",
		},
		[]string{"stream_id", "result"},
	)

	metricJobDispatchConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "job_dispatch_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)
)
