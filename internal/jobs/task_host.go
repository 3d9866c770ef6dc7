package jobs

import (
	"context"
	"fmt"
	"time"

	"serverlog-analyser/internal/events"
	"serverlog-analyser/internal/shared/loggers"
	"serverlog-analyser/internal/streams"

	"github.com/sourcegraph/conc"
)

const (
	HostInline    = "inline"
	HostHandoff   = "handoff"
	HostDedicated = "dedicated"
)

// Task is one job run ready to be hosted.
type Task struct {
	JobID     string
	SourceKey string
	Run       func(ctx context.Context)
}

// TaskHost is one way of running a task without blocking the submitter.
// Dispatch returns an error when the host cannot take the task right now.
type TaskHost interface {
	Name() string
	Dispatch(ctx context.Context, task Task) error
}

type taskGroupKey struct{}

// WithTaskGroup marks ctx as running inside group: jobs submitted with the returned
// context are added to that group instead of being handed to another host.
func WithTaskGroup(ctx context.Context, group *conc.WaitGroup) context.Context {
	return context.WithValue(ctx, taskGroupKey{}, group)
}

func taskGroupFrom(ctx context.Context) *conc.WaitGroup {
	group, _ := ctx.Value(taskGroupKey{}).(*conc.WaitGroup)
	return group
}

type inlineHost struct{}

// NewInlineHost runs tasks in the caller's own task group, see WithTaskGroup.
func NewInlineHost() TaskHost {
	return inlineHost{}
}

func (inlineHost) Name() string { return HostInline }

func (inlineHost) Dispatch(ctx context.Context, task Task) error {
	group := taskGroupFrom(ctx)
	if group == nil {
		return ErrNoTaskGroup
	}
	group.Go(func() {
		task.Run(ctx)
	})
	return nil
}

type handoffHost struct {
	producer streams.JobDispatchProducer
}

// NewHandoffHost publishes tasks to the dispatch queue. The queue workers resolve the job
// by id through the scheduler, so only the identity crosses the queue.
func NewHandoffHost(producer streams.JobDispatchProducer) TaskHost {
	return &handoffHost{producer: producer}
}

func (h *handoffHost) Name() string { return HostHandoff }

func (h *handoffHost) Dispatch(ctx context.Context, task Task) error {
	if h.producer == nil {
		return ErrHandoffUnavailable
	}
	event := events.JobDispatchEvent{
		JobID:      task.JobID,
		SourceKey:  task.SourceKey,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := h.producer.Produce(ctx, event); err != nil {
		return fmt.Errorf("%w: %w", ErrHandoffUnavailable, err)
	}
	return nil
}

type dedicatedHost struct {
	baseCtx context.Context
	slots   chan struct{}
}

// NewDedicatedHost starts one goroutine per task, at most maxWorkers at a time.
// Runs use baseCtx rather than the submitter's context, which usually ends first.
func NewDedicatedHost(baseCtx context.Context, maxWorkers int) TaskHost {
	if maxWorkers < 0 {
		maxWorkers = 0
	}
	return &dedicatedHost{baseCtx: baseCtx, slots: make(chan struct{}, maxWorkers)}
}

func (h *dedicatedHost) Name() string { return HostDedicated }

func (h *dedicatedHost) Dispatch(ctx context.Context, task Task) error {
	select {
	case h.slots <- struct{}{}:
	default:
		return ErrWorkerLimitReached
	}

	runCtx := loggers.Ctx(ctx).WithContext(h.baseCtx)
	metricDedicatedWorkersActive.Inc()
	go func() {
		defer func() {
			<-h.slots
			metricDedicatedWorkersActive.Dec()
		}()

		// a private group per run, torn down when the run returns
		var group conc.WaitGroup
		group.Go(func() {
			task.Run(runCtx)
		})
		if recovered := group.WaitAndRecover(); recovered != nil {
			loggers.Ctx(runCtx).Error().
				Str(loggers.FieldJobID, task.JobID).
				Str(loggers.FieldErrorStack, string(recovered.Stack)).
				Msgf("dedicated worker panic recovered: %v", recovered.Value)
		}
	}()
	return nil
}
