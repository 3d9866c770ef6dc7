package models

import "time"

type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCancelling JobStatus = "cancelling"
	JobDone       JobStatus = "done"
	JobCancelled  JobStatus = "cancelled"
	JobFailed     JobStatus = "failed"
)

// IsTerminal reports whether no further transition can leave this status.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobDone, JobCancelled, JobFailed:
		return true
	default:
		return false
	}
}

// Progress is one progress report emitted by an analysis run.
type Progress struct {
	Fraction    float64
	BytesRead   int64
	LinesParsed int64
}

// JobSnapshot is a point-in-time copy of a job, safe to hand out to callers.
type JobSnapshot struct {
	JobID           string          `json:"job_id"`
	Filename        string          `json:"filename"`
	SourcePath      string          `json:"source_path,omitempty"`
	Status          JobStatus       `json:"status"`
	Progress        float64         `json:"progress"`
	SavedBytes      int64           `json:"saved_bytes"`
	BytesRead       int64           `json:"bytes_read"`
	LinesParsed     int64           `json:"lines_parsed"`
	Result          *AnalysisResult `json:"result"`
	Error           *string         `json:"error"`
	CancelRequested bool            `json:"cancel_requested"`
	TaskHost        string          `json:"task_host,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	FinishedAt      *time.Time      `json:"finished_at,omitempty"`
}
