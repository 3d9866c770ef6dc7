package jobs

import (
	"sync"
	"time"

	"serverlog-analyser/internal/models"
)

// Job is the live record of one analysis run.
//
// Every field is guarded by mu: the submitting goroutine, the goroutine running the
// analysis and readers serving queries may all touch the same job.
// Once the status is terminal nothing but the cleanup bookkeeping changes.
type Job struct {
	mu sync.RWMutex

	id         string
	filename   string
	sourceKey  string
	savedBytes int64
	createdAt  time.Time

	status          models.JobStatus
	progress        float64
	bytesRead       int64
	linesParsed     int64
	result          *models.AnalysisResult
	errMsg          *string
	cancelRequested bool
	taskHost        string
	startedAt       *time.Time
	finishedAt      *time.Time
	cleanedUp       bool
}

func newJob(id, filename, sourceKey string, savedBytes int64, now time.Time) *Job {
	return &Job{
		id:         id,
		filename:   filename,
		sourceKey:  sourceKey,
		savedBytes: savedBytes,
		createdAt:  now,
		status:     models.JobQueued,
	}
}

func (j *Job) ID() string {
	return j.id
}

func (j *Job) Status() models.JobStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.status
}

func (j *Job) SourceKey() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.sourceKey
}

// IsCancelRequested is polled by the analyzer once per line.
func (j *Job) IsCancelRequested() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.cancelRequested
}

func (j *Job) Snapshot() models.JobSnapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()

	snapshot := models.JobSnapshot{
		JobID:           j.id,
		Filename:        j.filename,
		SourcePath:      j.sourceKey,
		Status:          j.status,
		Progress:        j.progress,
		SavedBytes:      j.savedBytes,
		BytesRead:       j.bytesRead,
		LinesParsed:     j.linesParsed,
		Result:          j.result,
		CancelRequested: j.cancelRequested,
		TaskHost:        j.taskHost,
		CreatedAt:       j.createdAt,
	}
	if j.errMsg != nil {
		msg := *j.errMsg
		snapshot.Error = &msg
	}
	if j.startedAt != nil {
		t := *j.startedAt
		snapshot.StartedAt = &t
	}
	if j.finishedAt != nil {
		t := *j.finishedAt
		snapshot.FinishedAt = &t
	}
	return snapshot
}

// requestCancel raises the cancel flag and moves a queued or processing job to cancelling.
// It reports false when the job was already terminal.
func (j *Job) requestCancel() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.status.IsTerminal() {
		return false
	}
	j.cancelRequested = true
	j.status = models.JobCancelling
	return true
}

// start moves queued to processing. It reports false when the run must not read the source:
// the job was cancelled while still queued or is already terminal.
func (j *Job) start(now time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.status != models.JobQueued || j.cancelRequested {
		return false
	}
	j.status = models.JobProcessing
	j.progress = 0
	j.startedAt = &now
	return true
}

func (j *Job) setTaskHost(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.taskHost = name
}

// updateProgress applies a progress report; progress and counters never move backwards.
func (j *Job) updateProgress(p models.Progress) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.status != models.JobProcessing && j.status != models.JobCancelling {
		return
	}
	if p.Fraction > j.progress {
		j.progress = min(p.Fraction, 1)
	}
	j.bytesRead = max(j.bytesRead, p.BytesRead)
	j.linesParsed = max(j.linesParsed, p.LinesParsed)
}

func (j *Job) complete(result *models.AnalysisResult, now time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.status.IsTerminal() {
		return false
	}
	j.status = models.JobDone
	j.progress = 1
	j.result = result
	j.finishedAt = &now
	return true
}

func (j *Job) fail(msg string, now time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.status.IsTerminal() {
		return false
	}
	j.status = models.JobFailed
	j.errMsg = &msg
	j.finishedAt = &now
	return true
}

func (j *Job) cancel(now time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.status.IsTerminal() {
		return false
	}
	j.status = models.JobCancelled
	j.finishedAt = &now
	return true
}

// takeSourceForCleanup hands out the source key once, after the job reached a terminal status.
func (j *Job) takeSourceForCleanup() (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.status.IsTerminal() || j.cleanedUp || j.sourceKey == "" {
		return "", false
	}
	j.cleanedUp = true
	return j.sourceKey, true
}

func (j *Job) clearSourceKey() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.sourceKey = ""
}
