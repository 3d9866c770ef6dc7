package events

import (
	"time"
)

// JobDispatchEvent asks a dispatch worker to run the analysis of one job.
// The job itself lives in the scheduler registry; the event only carries its identity.
//
// Example JSON:
//
//	{
//	  "jobId": "job-01HZX3Q1J6P4K2ZB7Y5T0V9W8C",
//	  "sourceKey": "uploads/01HZX3Q1J6P4K2ZB7Y5T0V9W8C_access.log",
//	  "enqueuedAt": "2026-01-23T12:00:01Z"
//	}
type JobDispatchEvent struct {
	JobID      string    `json:"jobId"`
	SourceKey  string    `json:"sourceKey"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}
