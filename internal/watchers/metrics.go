package watchers

import (
	"serverlog-analyser/internal/shared/metrics"
)

const (
	resultIngested = "ingested"
	resultFailed   = "failed"
)

var (
	metricInboxFilesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubInbox,
			Name:      "files_total",
		},
		[]string{"result"},
	)
)
