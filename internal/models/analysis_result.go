package models

import (
	"encoding/json"
	"fmt"
)

// TimestampLayout is the layout of timestamps found inside log lines and reported in results.
const TimestampLayout = "2006-01-02 15:04:05"

// AnalysisResult is the finalized statistics document of one analysis run.
//
// Example JSON:
//
//	{
//	  "total_requests": 3,
//	  "status_counts": {"200": 2, "404": 1},
//	  "top_paths": [["/a", 3]],
//	  "top_paths_aggregated": [["/a", 3]],
//	  "top_ips": [["127.0.0.1", 3]],
//	  "top_user_agents": [],
//	  "timings": {"min": 0.1, "mean": 0.1, "median": 0.1, "p95": 0.1, "p99": 0.1},
//	  "start_time": "2026-01-23 12:00:01",
//	  "end_time": "2026-01-23 12:00:03",
//	  "duration_seconds": 2,
//	  "duration": "0:00:02"
//	}
//
// start_time, end_time and duration are omitted when no line carried a timestamp.
type AnalysisResult struct {
	TotalRequests      int64            `json:"total_requests"`
	StatusCounts       map[string]int64 `json:"status_counts"`
	TopPaths           []RankedCount    `json:"top_paths"`
	TopPathsAggregated []RankedCount    `json:"top_paths_aggregated"`
	TopIPs             []RankedCount    `json:"top_ips"`
	TopUserAgents      []RankedCount    `json:"top_user_agents"`
	Timings            Timings          `json:"timings"`
	StartTime          *string          `json:"start_time,omitempty"`
	EndTime            *string          `json:"end_time,omitempty"`
	DurationSeconds    float64          `json:"duration_seconds"`
	Duration           string           `json:"duration,omitempty"`
}

// Timings holds response-time statistics in seconds. All fields are 0 when no durations were seen.
type Timings struct {
	Min    float64 `json:"min"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P95    float64 `json:"p95"`
	P99    float64 `json:"p99"`
}

// RankedCount is one entry of a frequency ranking. It is encoded as a two-element array: ["/a", 3].
type RankedCount struct {
	Key   string
	Count int64
}

func (r RankedCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.Key, r.Count})
}

func (r *RankedCount) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("ranked count: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.Key); err != nil {
		return fmt.Errorf("ranked count key: %w", err)
	}
	if err := json.Unmarshal(pair[1], &r.Count); err != nil {
		return fmt.Errorf("ranked count value: %w", err)
	}
	return nil
}
