package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"serverlog-analyser/internal/events"
	"serverlog-analyser/internal/shared/loggers"
	"serverlog-analyser/internal/shared/metrics"
	"serverlog-analyser/internal/shared/svcerrors"
	"serverlog-analyser/internal/shared/ulid"

	"github.com/sourcegraph/conc"
)

// JobProcessor runs one dispatched job to completion.
//
//go:generate mockgen -source=job_dispatch_consumer.go -destination=./mocks/job_dispatch_consumer_mock.go -package=mocks
type JobProcessor interface {
	ProcessJob(ctx context.Context, jobID string) *svcerrors.ServiceError
}

type JobDispatchConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type jobDispatchConsumer struct {
	queue     *PartitionedQueue[events.JobDispatchEvent]
	processor JobProcessor

	wg   sync.WaitGroup
	runs conc.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewJobDispatchConsumer(queue *PartitionedQueue[events.JobDispatchEvent], processor JobProcessor, logger loggers.Logger) JobDispatchConsumer {
	return &jobDispatchConsumer{
		queue:     queue,
		processor: processor,
		stopCh:    make(chan struct{}),
		logger:    logger,
	}
}

// Start spawns 1 worker goroutine per partition.
// A worker only hands events off: every job runs in its own goroutine, so jobs sharing
// a partition run concurrently.
func (consumer *jobDispatchConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		ch := consumer.queue.partition(partitionIndex)
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop waits for workers to stop, then for the jobs they started (best called during app shutdown).
// Running jobs are finished first, cancel the Start context to abort them.
func (consumer *jobDispatchConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
	consumer.runs.Wait()
}

func (consumer *jobDispatchConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.JobDispatchEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			consumer.runs.Go(func() {
				consumer.handle(ctx, partitionIndex, event)
			})
		}
	}
}

func (consumer *jobDispatchConsumer) handle(ctx context.Context, partitionIndex int, event events.JobDispatchEvent) {
	ctx = consumer.logger.With().
		Str(loggers.FieldPartitionId, fmt.Sprintf("%d", partitionIndex)).
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Str(loggers.FieldJobID, event.JobID).
		Logger().WithContext(ctx)

	// Handle panic recovery so one job cannot take the process down
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("consumer panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricJobDispatchConsumedTotal.WithLabelValues(streamJobDispatch, svcErr.Code).Inc()
		}
	}()

	svcError := consumer.processor.ProcessJob(ctx, event.JobID)
	if svcError != nil {
		loggers.Ctx(ctx).Warn().Str(loggers.FieldErrorCode, svcError.Code).Msg("dispatched job not processed")
		metricJobDispatchConsumedTotal.WithLabelValues(streamJobDispatch, svcError.Code).Inc()
		return
	}
	metricJobDispatchConsumedTotal.WithLabelValues(streamJobDispatch, metrics.ValueNoError).Inc()
}
