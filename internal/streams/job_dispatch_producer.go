package streams

import (
	"context"
	"errors"

	"serverlog-analyser/internal/events"
)

const (
	resultPublished = "published"
	resultFull      = "full"
	resultClosed    = "closed"
)

// JobDispatchProducer hands jobs over to the dispatch workers.
//
// The partition key is the job id, so a job is only ever seen by one worker.
// Publishing never blocks: a full partition is reported to the caller, which
// then falls back to another way of running the job.
//
//go:generate mockgen -source=job_dispatch_producer.go -destination=./mocks/job_dispatch_producer_mock.go -package=mocks
type JobDispatchProducer interface {
	Produce(ctx context.Context, event events.JobDispatchEvent) error
}

type jobDispatchProducer struct {
	queue *PartitionedQueue[events.JobDispatchEvent]
}

func NewJobDispatchProducer(queue *PartitionedQueue[events.JobDispatchEvent]) JobDispatchProducer {
	return &jobDispatchProducer{queue: queue}
}

func (producer *jobDispatchProducer) Produce(ctx context.Context, event events.JobDispatchEvent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := producer.queue.TryPublish(event.JobID, event)
	switch {
	case err == nil:
		metricJobDispatchProducedTotal.WithLabelValues(streamJobDispatch, resultPublished).Inc()
	case errors.Is(err, ErrQueueFull):
		metricJobDispatchProducedTotal.WithLabelValues(streamJobDispatch, resultFull).Inc()
	case errors.Is(err, ErrQueueClosed):
		metricJobDispatchProducedTotal.WithLabelValues(streamJobDispatch, resultClosed).Inc()
	}
	return err
}
