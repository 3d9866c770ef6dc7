package jobs

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"serverlog-analyser/internal/analyzers"
	analyzermocks "serverlog-analyser/internal/analyzers/mocks"
	"serverlog-analyser/internal/events"
	"serverlog-analyser/internal/models"
	"serverlog-analyser/internal/shared/filestorages"
	storagemocks "serverlog-analyser/internal/shared/filestorages/mocks"
	"serverlog-analyser/internal/shared/loggers"
	"serverlog-analyser/internal/streams"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// parkingHost accepts tasks without running them, leaving the jobs queued.
type parkingHost struct {
	mu    sync.Mutex
	tasks []Task
}

func (h *parkingHost) Name() string { return "parking" }

func (h *parkingHost) Dispatch(_ context.Context, task Task) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tasks = append(h.tasks, task)
	return nil
}

type schedulerFixture struct {
	scheduler Scheduler
	analyzer  *analyzermocks.MockStreamingAnalyzer
	storage   *storagemocks.MockFileStorage
}

func newSchedulerFixture(t *testing.T, deleteUploads bool, hosts ...TaskHost) *schedulerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	analyzer := analyzermocks.NewMockStreamingAnalyzer(ctrl)
	storage := storagemocks.NewMockFileStorage(ctrl)
	if len(hosts) == 0 {
		hosts = []TaskHost{NewInlineHost()}
	}
	return &schedulerFixture{
		scheduler: NewScheduler(NewRegistry(), analyzer, storage, hosts, SchedulerOptions{DeleteUploadsAfterProcessing: deleteUploads}),
		analyzer:  analyzer,
		storage:   storage,
	}
}

// submitInline submits inside a task group and waits for the run to finish.
func (f *schedulerFixture) submitInline(t *testing.T, sourceKey string) string {
	t.Helper()
	var group conc.WaitGroup
	jobID, err := f.scheduler.Submit(WithTaskGroup(context.Background(), &group), sourceKey, "access.log", 64)
	require.NoError(t, err)
	group.Wait()
	return jobID
}

func (f *schedulerFixture) snapshot(t *testing.T, jobID string) *models.JobSnapshot {
	t.Helper()
	snapshot, svcErr := f.scheduler.Get(context.Background(), jobID)
	require.Nil(t, svcErr)
	return snapshot
}

func TestScheduler_SubmitRunsToDone(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, false)
	result := &models.AnalysisResult{TotalRequests: 3}

	f.analyzer.EXPECT().Analyze(gomock.Any(), "uploads/a.log", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, onProgress analyzers.ProgressFunc, isCancelled analyzers.CancelFunc) (*models.AnalysisResult, error) {
			assert.False(t, isCancelled())
			onProgress(models.Progress{Fraction: 0.5, BytesRead: 32, LinesParsed: 1})
			onProgress(models.Progress{Fraction: 0.999, BytesRead: 64, LinesParsed: 2})
			return result, nil
		})

	jobID := f.submitInline(t, "uploads/a.log")
	assert.True(t, strings.HasPrefix(jobID, "job-"))

	snapshot := f.snapshot(t, jobID)
	assert.Equal(t, models.JobDone, snapshot.Status)
	assert.Equal(t, 1.0, snapshot.Progress)
	assert.Same(t, result, snapshot.Result)
	assert.Nil(t, snapshot.Error)
	assert.Equal(t, int64(64), snapshot.BytesRead)
	assert.Equal(t, int64(2), snapshot.LinesParsed)
	assert.Equal(t, int64(64), snapshot.SavedBytes)
	assert.Equal(t, HostInline, snapshot.TaskHost)
	assert.Equal(t, "uploads/a.log", snapshot.SourcePath, "source kept when cleanup is disabled")
}

func TestScheduler_ProgressVisibleWhileProcessing(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, false)
	var jobID string
	var ids sync.WaitGroup
	ids.Add(1)

	f.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, onProgress analyzers.ProgressFunc, _ analyzers.CancelFunc) (*models.AnalysisResult, error) {
			ids.Wait()
			onProgress(models.Progress{Fraction: 0.25, LinesParsed: 10})
			mid, _ := f.scheduler.Get(context.Background(), jobID)
			assert.Equal(t, models.JobProcessing, mid.Status)
			assert.Equal(t, 0.25, mid.Progress)
			assert.Nil(t, mid.Result)

			onProgress(models.Progress{Fraction: 0.999, LinesParsed: 40})
			late, _ := f.scheduler.Get(context.Background(), jobID)
			assert.Less(t, late.Progress, 1.0)
			return &models.AnalysisResult{}, nil
		})

	var group conc.WaitGroup
	id, err := f.scheduler.Submit(WithTaskGroup(context.Background(), &group), "uploads/a.log", "a.log", 0)
	require.NoError(t, err)
	jobID = id
	ids.Done()
	group.Wait()

	assert.Equal(t, 1.0, f.snapshot(t, jobID).Progress)
}

func TestScheduler_CancelDuringProcessing(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, false)
	var jobID string
	var ids sync.WaitGroup
	ids.Add(1)

	f.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ analyzers.ProgressFunc, isCancelled analyzers.CancelFunc) (*models.AnalysisResult, error) {
			ids.Wait()
			snapshot, svcErr := f.scheduler.Cancel(ctx, jobID)
			assert.Nil(t, svcErr)
			assert.Equal(t, models.JobCancelling, snapshot.Status)
			assert.True(t, snapshot.CancelRequested)
			assert.True(t, isCancelled())
			return nil, analyzers.ErrCancelled
		})

	var group conc.WaitGroup
	id, err := f.scheduler.Submit(WithTaskGroup(context.Background(), &group), "uploads/a.log", "a.log", 0)
	require.NoError(t, err)
	jobID = id
	ids.Done()
	group.Wait()

	snapshot := f.snapshot(t, jobID)
	assert.Equal(t, models.JobCancelled, snapshot.Status)
	assert.Nil(t, snapshot.Result)
	assert.Nil(t, snapshot.Error)
	assert.True(t, snapshot.CancelRequested)
	assert.NotNil(t, snapshot.FinishedAt)
}

func TestScheduler_CancelWhileQueuedNeverReads(t *testing.T) {
	t.Parallel()

	host := &parkingHost{}
	f := newSchedulerFixture(t, true, host)

	jobID, err := f.scheduler.Submit(context.Background(), "uploads/a.log", "a.log", 0)
	require.NoError(t, err)
	assert.Equal(t, models.JobQueued, f.snapshot(t, jobID).Status)

	snapshot, svcErr := f.scheduler.Cancel(context.Background(), jobID)
	require.Nil(t, svcErr)
	assert.Equal(t, models.JobCancelling, snapshot.Status)

	// no Analyze expectation: the run must not touch the source
	f.storage.EXPECT().Delete(gomock.Any(), "uploads/a.log").Return(nil)
	require.Len(t, host.tasks, 1)
	host.tasks[0].Run(context.Background())

	snapshot = f.snapshot(t, jobID)
	assert.Equal(t, models.JobCancelled, snapshot.Status)
	assert.Nil(t, snapshot.Result)
	assert.Nil(t, snapshot.Error)
	assert.Empty(t, snapshot.SourcePath)
}

func TestScheduler_SourceReadErrorFails(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, true)
	readErr := &analyzers.SourceReadError{SourceKey: "uploads/a.log", Err: filestorages.ErrFileNotFound}

	f.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, readErr)
	f.storage.EXPECT().Delete(gomock.Any(), "uploads/a.log").Return(filestorages.ErrFileNotFound)

	jobID := f.submitInline(t, "uploads/a.log")

	snapshot := f.snapshot(t, jobID)
	assert.Equal(t, models.JobFailed, snapshot.Status)
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, readErr.Error(), *snapshot.Error)
	assert.Nil(t, snapshot.Result)
	assert.Empty(t, snapshot.SourcePath, "a source that is already gone counts as cleaned up")
}

func TestScheduler_PanicInRunFails(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, false)
	f.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, analyzers.ProgressFunc, analyzers.CancelFunc) (*models.AnalysisResult, error) {
			panic("unexpected state")
		})

	jobID := f.submitInline(t, "uploads/a.log")

	snapshot := f.snapshot(t, jobID)
	assert.Equal(t, models.JobFailed, snapshot.Status)
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, "internal_error: unexpected state", *snapshot.Error)
}

func TestScheduler_AllHostsDeclined(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, true, NewInlineHost(), NewHandoffHost(nil), NewDedicatedHost(context.Background(), 0))
	f.storage.EXPECT().Delete(gomock.Any(), "uploads/a.log").Return(nil)

	jobID, err := f.scheduler.Submit(context.Background(), "uploads/a.log", "a.log", 10)
	require.NoError(t, err)

	snapshot := f.snapshot(t, jobID)
	assert.Equal(t, models.JobFailed, snapshot.Status)
	require.NotNil(t, snapshot.Error)
	assert.True(t, strings.HasPrefix(*snapshot.Error, "scheduling_error: "))
	assert.Contains(t, *snapshot.Error, "inline: no task group in context")
	assert.Contains(t, *snapshot.Error, "handoff: dispatch queue unavailable")
	assert.Contains(t, *snapshot.Error, "dedicated: dedicated worker limit reached")
	assert.Empty(t, snapshot.TaskHost)
	assert.Zero(t, snapshot.LinesParsed)
	assert.Empty(t, snapshot.SourcePath)
}

func TestScheduler_NoHosts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	scheduler := NewScheduler(NewRegistry(), analyzermocks.NewMockStreamingAnalyzer(ctrl), nil, nil, SchedulerOptions{})

	jobID, err := scheduler.Submit(context.Background(), "uploads/a.log", "a.log", 0)
	require.NoError(t, err)

	snapshot, svcErr := scheduler.Get(context.Background(), jobID)
	require.Nil(t, svcErr)
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, "scheduling_error: no task host configured", *snapshot.Error)
}

func TestScheduler_FallsBackToNextHost(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, false, NewInlineHost(), NewDedicatedHost(context.Background(), 1))
	f.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.AnalysisResult{}, nil)

	jobID, err := f.scheduler.Submit(context.Background(), "uploads/a.log", "a.log", 0)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		s, _ := f.scheduler.Get(context.Background(), jobID)
		return s.Status == models.JobDone
	}, eventuallyTimeout, 5*time.Millisecond)
	assert.Equal(t, HostDedicated, f.snapshot(t, jobID).TaskHost)
}

func TestScheduler_HandoffThroughDispatchQueue(t *testing.T) {
	t.Parallel()

	queue := streams.NewPartitionedQueue[events.JobDispatchEvent](2, 4)
	f := newSchedulerFixture(t, true, NewInlineHost(), NewHandoffHost(streams.NewJobDispatchProducer(queue)))
	consumer := streams.NewJobDispatchConsumer(queue, f.scheduler, loggers.Nop())

	f.analyzer.EXPECT().Analyze(gomock.Any(), "uploads/a.log", gomock.Any(), gomock.Any()).Return(&models.AnalysisResult{TotalRequests: 1}, nil)
	f.storage.EXPECT().Delete(gomock.Any(), "uploads/a.log").Return(nil)

	jobID, err := f.scheduler.Submit(context.Background(), "uploads/a.log", "a.log", 0)
	require.NoError(t, err)
	assert.Equal(t, models.JobQueued, f.snapshot(t, jobID).Status)

	consumer.Start(context.Background())
	defer consumer.Stop()

	require.Eventually(t, func() bool {
		s, _ := f.scheduler.Get(context.Background(), jobID)
		return s.Status == models.JobDone && s.SourcePath == ""
	}, eventuallyTimeout, 5*time.Millisecond)
	assert.Equal(t, HostHandoff, f.snapshot(t, jobID).TaskHost)
}

func TestScheduler_HandoffJobsOnOnePartitionProcessTogether(t *testing.T) {
	t.Parallel()

	queue := streams.NewPartitionedQueue[events.JobDispatchEvent](1, 64)
	f := newSchedulerFixture(t, false, NewInlineHost(), NewHandoffHost(streams.NewJobDispatchProducer(queue)), NewDedicatedHost(context.Background(), 4))
	consumer := streams.NewJobDispatchConsumer(queue, f.scheduler, loggers.Nop())

	release := make(chan struct{})
	f.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, analyzers.ProgressFunc, analyzers.CancelFunc) (*models.AnalysisResult, error) {
			<-release
			return &models.AnalysisResult{}, nil
		}).Times(3)

	consumer.Start(context.Background())
	defer consumer.Stop()

	jobIDs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		jobID, err := f.scheduler.Submit(context.Background(), "uploads/a.log", "a.log", 0)
		require.NoError(t, err)
		jobIDs = append(jobIDs, jobID)
	}

	countStatus := func(status models.JobStatus) int {
		n := 0
		for _, jobID := range jobIDs {
			s, _ := f.scheduler.Get(context.Background(), jobID)
			if s.Status == status {
				n++
			}
		}
		return n
	}

	assert.Eventually(t, func() bool {
		return countStatus(models.JobProcessing) == len(jobIDs)
	}, eventuallyTimeout, 5*time.Millisecond, "every job on the shared partition should be processing")
	for _, jobID := range jobIDs {
		assert.Equal(t, HostHandoff, f.snapshot(t, jobID).TaskHost)
	}

	close(release)
	require.Eventually(t, func() bool {
		return countStatus(models.JobDone) == len(jobIDs)
	}, eventuallyTimeout, 5*time.Millisecond)
}

func TestScheduler_CleanupFailureKeepsStatus(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, true)
	f.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.AnalysisResult{}, nil)
	f.storage.EXPECT().Delete(gomock.Any(), "uploads/a.log").Return(errors.New("permission denied"))

	jobID := f.submitInline(t, "uploads/a.log")

	snapshot := f.snapshot(t, jobID)
	assert.Equal(t, models.JobDone, snapshot.Status)
	assert.Nil(t, snapshot.Error)
	assert.Equal(t, "uploads/a.log", snapshot.SourcePath)
}

func TestScheduler_CleanupRunsOnce(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, true)
	f.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.AnalysisResult{}, nil)
	f.storage.EXPECT().Delete(gomock.Any(), "uploads/a.log").Return(nil).Times(1)

	jobID := f.submitInline(t, "uploads/a.log")

	// a duplicate dispatch of a finished job neither reruns nor cleans again
	require.Nil(t, f.scheduler.ProcessJob(context.Background(), jobID))
	assert.Equal(t, models.JobDone, f.snapshot(t, jobID).Status)
}

func TestScheduler_CancelTerminalIsNoop(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, false)
	f.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.AnalysisResult{}, nil)

	jobID := f.submitInline(t, "uploads/a.log")

	snapshot, svcErr := f.scheduler.Cancel(context.Background(), jobID)
	require.Nil(t, svcErr)
	assert.Equal(t, models.JobDone, snapshot.Status)
	assert.False(t, snapshot.CancelRequested)
	assert.Equal(t, 1.0, snapshot.Progress)
}

func TestScheduler_UnknownJob(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, false)
	ctx := context.Background()

	_, svcErr := f.scheduler.Get(ctx, "job-missing")
	require.NotNil(t, svcErr)
	assert.Equal(t, "JOB_4040", svcErr.Code)
	assert.True(t, svcErr.IsNotFound())

	_, svcErr = f.scheduler.Cancel(ctx, "job-missing")
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.HttpStatusCode)

	svcErr = f.scheduler.ProcessJob(ctx, "job-missing")
	require.NotNil(t, svcErr)
	assert.Equal(t, "JOB_4040", svcErr.Code)
}

func TestScheduler_SubmitRequiresSource(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t, false)

	jobID, err := f.scheduler.Submit(context.Background(), "  ", "a.log", 0)
	assert.Empty(t, jobID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JOB_1000")
	assert.Empty(t, f.scheduler.List(context.Background()))
}

func TestScheduler_ListInSubmissionOrder(t *testing.T) {
	t.Parallel()

	host := &parkingHost{}
	f := newSchedulerFixture(t, false, host)
	ctx := context.Background()

	first, err := f.scheduler.Submit(ctx, "uploads/1.log", "1.log", 0)
	require.NoError(t, err)
	second, err := f.scheduler.Submit(ctx, "uploads/2.log", "2.log", 0)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	list := f.scheduler.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].JobID)
	assert.Equal(t, second, list[1].JobID)
	assert.Equal(t, "parking", list[0].TaskHost)
}
