package jobs

import (
	"serverlog-analyser/internal/shared/metrics"
)

const (
	hostNone = "none"

	cleanupDeleted = "deleted"
	cleanupFailed  = "failed"
)

var (
	metricJobSubmittedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubJobs,
			Name:      "submitted_total",
		},
		[]string{"task_host"},
	)

	metricJobFinishedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubJobs,
			Name:      "finished_total",
		},
		[]string{"status"},
	)

	metricJobCleanupTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubJobs,
			Name:      "cleanup_total",
		},
		[]string{"result"},
	)

	metricDedicatedWorkersActive = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubJobs,
			Name:      "dedicated_workers_active",
		},
	)
)
