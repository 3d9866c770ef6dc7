package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"serverlog-analyser/internal/analyzers"
	"serverlog-analyser/internal/models"
	"serverlog-analyser/internal/shared/filestorages"
	"serverlog-analyser/internal/shared/loggers"
	"serverlog-analyser/internal/shared/svcerrors"
	"serverlog-analyser/internal/shared/ulid"
)

const jobIDPrefix = "job-"

// SchedulerOptions holds the policies applied around each run.
type SchedulerOptions struct {
	// DeleteUploadsAfterProcessing removes the source from storage once the job is terminal.
	DeleteUploadsAfterProcessing bool
}

// Scheduler creates jobs, runs them through the first task host that accepts them
// and answers queries about them.
//
//go:generate mockgen -source=scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks
type Scheduler interface {
	// Submit registers a queued job for a stored source and dispatches its run.
	// When no host accepts the run the job is failed, and its id is still returned.
	Submit(ctx context.Context, sourceKey, filename string, savedBytes int64) (string, error)
	Get(ctx context.Context, jobID string) (*models.JobSnapshot, *svcerrors.ServiceError)
	// Cancel requests cooperative cancellation. It is a no-op on terminal jobs.
	Cancel(ctx context.Context, jobID string) (*models.JobSnapshot, *svcerrors.ServiceError)
	List(ctx context.Context) []models.JobSnapshot
	// ProcessJob runs a registered job on the calling goroutine. Dispatch workers call it.
	ProcessJob(ctx context.Context, jobID string) *svcerrors.ServiceError
}

type scheduler struct {
	registry *Registry
	analyzer analyzers.StreamingAnalyzer
	storage  filestorages.FileStorage
	hosts    []TaskHost
	opts     SchedulerOptions
	now      func() time.Time
}

// NewScheduler probes hosts in the given order on every submission.
func NewScheduler(registry *Registry, analyzer analyzers.StreamingAnalyzer, storage filestorages.FileStorage, hosts []TaskHost, opts SchedulerOptions) Scheduler {
	return &scheduler{
		registry: registry,
		analyzer: analyzer,
		storage:  storage,
		hosts:    hosts,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *scheduler) Submit(ctx context.Context, sourceKey, filename string, savedBytes int64) (string, error) {
	if strings.TrimSpace(sourceKey) == "" {
		return "", errValidationFailed("source key is required")
	}

	job := newJob(ulid.NewPrefixed(jobIDPrefix), filename, sourceKey, savedBytes, s.now())
	if err := s.registry.Add(job); err != nil {
		return "", svcerrors.NewInternalErrorUndefined(fmt.Errorf("registerJob: %w", err))
	}

	logger := loggers.Ctx(ctx).With().
		Str(loggers.FieldJobID, job.ID()).
		Str(loggers.FieldFilename, filename).
		Str(loggers.FieldSourceKey, sourceKey).
		Logger()
	ctx = logger.WithContext(ctx)

	task := Task{
		JobID:     job.ID(),
		SourceKey: sourceKey,
		Run: func(runCtx context.Context) {
			s.run(runCtx, job)
		},
	}

	failures := make([]string, 0, len(s.hosts))
	for _, host := range s.hosts {
		// recorded first so a run that starts right away reports its host
		job.setTaskHost(host.Name())
		err := host.Dispatch(ctx, task)
		if err == nil {
			logger.Info().Str(loggers.FieldTaskHost, host.Name()).Msg("job scheduled")
			metricJobSubmittedTotal.WithLabelValues(host.Name()).Inc()
			return job.ID(), nil
		}
		logger.Debug().Err(err).Str(loggers.FieldTaskHost, host.Name()).Msg("task host declined job")
		failures = append(failures, fmt.Sprintf("%s: %v", host.Name(), err))
	}

	job.setTaskHost("")
	if len(failures) == 0 {
		failures = append(failures, "no task host configured")
	}
	msg := schedulingErrorPrefix + strings.Join(failures, "; ")
	if job.fail(msg, s.now()) {
		metricJobFinishedTotal.WithLabelValues(string(models.JobFailed)).Inc()
	}
	logger.Error().Msg(msg)
	metricJobSubmittedTotal.WithLabelValues(hostNone).Inc()
	s.cleanup(ctx, job)

	return job.ID(), nil
}

func (s *scheduler) Get(_ context.Context, jobID string) (*models.JobSnapshot, *svcerrors.ServiceError) {
	job, ok := s.registry.Get(jobID)
	if !ok {
		return nil, errJobNotFound(jobID)
	}
	snapshot := job.Snapshot()
	return &snapshot, nil
}

func (s *scheduler) Cancel(ctx context.Context, jobID string) (*models.JobSnapshot, *svcerrors.ServiceError) {
	job, ok := s.registry.Get(jobID)
	if !ok {
		return nil, errJobNotFound(jobID)
	}
	if job.requestCancel() {
		loggers.Ctx(ctx).Info().Str(loggers.FieldJobID, jobID).Msg("job cancellation requested")
	}
	snapshot := job.Snapshot()
	return &snapshot, nil
}

func (s *scheduler) List(_ context.Context) []models.JobSnapshot {
	jobs := s.registry.List()
	snapshots := make([]models.JobSnapshot, 0, len(jobs))
	for _, job := range jobs {
		snapshots = append(snapshots, job.Snapshot())
	}
	return snapshots
}

func (s *scheduler) ProcessJob(ctx context.Context, jobID string) *svcerrors.ServiceError {
	job, ok := s.registry.Get(jobID)
	if !ok {
		return errJobNotFound(jobID)
	}
	s.run(ctx, job)
	return nil
}

// run drives one job to a terminal status and applies the cleanup policy.
func (s *scheduler) run(ctx context.Context, job *Job) {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldJobID, job.ID()).Logger()
	ctx = logger.WithContext(ctx)

	defer s.cleanup(ctx, job)
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Msgf("job run panicked: %v", r)
			s.finish(ctx, job, models.JobFailed, func(now time.Time) bool {
				return job.fail(fmt.Sprintf("%s%v", internalErrorPrefix, r), now)
			})
		}
	}()

	if !job.start(s.now()) {
		// cancelled while it was still waiting for a host
		s.finish(ctx, job, models.JobCancelled, job.cancel)
		return
	}
	logger.Info().Msg("job started")

	result, err := s.analyzer.Analyze(ctx, job.SourceKey(), job.updateProgress, job.IsCancelRequested)
	switch {
	case err == nil:
		s.finish(ctx, job, models.JobDone, func(now time.Time) bool {
			return job.complete(result, now)
		})
	case errors.Is(err, analyzers.ErrCancelled):
		s.finish(ctx, job, models.JobCancelled, job.cancel)
	default:
		logger.Error().Err(err).Msg("job analysis failed")
		s.finish(ctx, job, models.JobFailed, func(now time.Time) bool {
			return job.fail(err.Error(), now)
		})
	}
}

func (s *scheduler) finish(ctx context.Context, job *Job, status models.JobStatus, transition func(now time.Time) bool) {
	if !transition(s.now()) {
		return
	}
	snapshot := job.Snapshot()
	loggers.Ctx(ctx).Info().
		Str(loggers.FieldJobStatus, string(status)).
		Int64(loggers.FieldBytesRead, snapshot.BytesRead).
		Int64(loggers.FieldLinesRead, snapshot.LinesParsed).
		Msg("job finished")
	metricJobFinishedTotal.WithLabelValues(string(status)).Inc()
}

// cleanup deletes the source of a terminal job when the policy asks for it.
// Failures are logged and never change the job status.
func (s *scheduler) cleanup(ctx context.Context, job *Job) {
	if !s.opts.DeleteUploadsAfterProcessing || s.storage == nil {
		return
	}
	key, ok := job.takeSourceForCleanup()
	if !ok {
		return
	}

	logger := loggers.Ctx(ctx)
	err := s.storage.Delete(context.WithoutCancel(ctx), key)
	if err != nil && !errors.Is(err, filestorages.ErrFileNotFound) {
		logger.Error().Err(err).Str(loggers.FieldSourceKey, key).Msg("failed to remove job source")
		metricJobCleanupTotal.WithLabelValues(cleanupFailed).Inc()
		return
	}
	job.clearSourceKey()
	logger.Info().Str(loggers.FieldSourceKey, key).Msg("removed job source")
	metricJobCleanupTotal.WithLabelValues(cleanupDeleted).Inc()
}
