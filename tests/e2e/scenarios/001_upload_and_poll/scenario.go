package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
const (
	linesPerFile = 40000
	garbageEvery = 1000 // every N-th line is not a request line
)

var (
	paths      = []string{"/", "/about", "/search?q=go", "/search/?q=rust"}
	statuses   = []string{"200", "200", "404", "500"}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"curl/7.88.1",
		"-",
	}
)

// ### End - fixed configs

type uploadResponse struct {
	JobID         string `json:"job_id"`
	Status        string `json:"status"`
	UploadedBytes int64  `json:"uploaded_bytes"`
}

type jobSnapshot struct {
	JobID    string  `json:"job_id"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	Error    *string `json:"error"`
	Result   *struct {
		TotalRequests int64            `json:"total_requests"`
		StatusCounts  map[string]int64 `json:"status_counts"`
		TopPathsAgg   [][2]any         `json:"top_paths_aggregated"`
		Duration      string           `json:"duration"`
	} `json:"result"`
}

// main runs the e2e scenario: 001_upload_and_poll
//
// It uploads several generated access logs to a running server, polls every job
// until it is terminal and checks the counts of each result document. One extra
// upload is cancelled right after submission.
//
// Expected results:
//   - Every completed job reports total_requests == linesPerFile - linesPerFile/garbageEvery
//   - status_counts are 50% "200", 25% "404", 25% "500"
//   - "/search?q=go" and "/search/?q=rust" collapse into "/search" in top_paths_aggregated
//   - The cancelled job ends "cancelled" or, if it finished first, "done"
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8000" // Base URL of the serverlog-analyser server
	files := 4                         // Number of files to upload
	parallel := 2                      // Number of concurrent uploads
	pollTimeout := 2 * time.Minute     // Per-job deadline for reaching a terminal status

	fmt.Println("Starting e2e scenario: 001_upload_and_poll")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("FILES: %d\n", files)
	fmt.Printf("LINES_PER_FILE: %d\n", linesPerFile)
	fmt.Println()

	content := generateLog()
	fmt.Printf("Generated %d bytes per file\n", len(content))

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var failures int64

	for i := 1; i <= files; i++ {
		wg.Add(1)
		workerChan <- struct{}{}

		go func(index int) {
			defer wg.Done()
			defer func() { <-workerChan }()

			if err := uploadAndVerify(baseURL, fmt.Sprintf("access-%02d.log", index), content, pollTimeout); err != nil {
				atomic.AddInt64(&failures, 1)
				fmt.Fprintf(os.Stderr, "ERROR: file %d: %v\n", index, err)
				return
			}
			fmt.Printf("File %d verified\n", index)
		}(i)
	}
	wg.Wait()

	if err := uploadAndCancel(baseURL, content, pollTimeout); err != nil {
		atomic.AddInt64(&failures, 1)
		fmt.Fprintf(os.Stderr, "ERROR: cancel: %v\n", err)
	}

	fmt.Println()
	if n := atomic.LoadInt64(&failures); n > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d checks failed\n", n)
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func generateLog() []byte {
	var b strings.Builder
	for i := 0; i < linesPerFile; i++ {
		if i%garbageEvery == 0 {
			b.WriteString("2026-01-23 12:00:00 worker heartbeat\n")
			continue
		}
		fmt.Fprintf(&b, "2026-01-23 12:%02d:%02d 10.0.%d.%d - - \"GET %s HTTP/1.1\" %s 512 0.%03d \"-\" \"%s\"\n",
			(i/60)%60, i%60, (i/256)%256, i%256,
			paths[i%len(paths)], statuses[(i/4)%len(statuses)], i%1000, userAgents[(i/16)%len(userAgents)])
	}
	return []byte(b.String())
}

func uploadAndVerify(baseURL, filename string, content []byte, timeout time.Duration) error {
	uploaded, err := upload(baseURL, filename, content)
	if err != nil {
		return err
	}
	snapshot, err := pollUntilTerminal(baseURL, uploaded.JobID, timeout)
	if err != nil {
		return err
	}
	if snapshot.Status != "done" || snapshot.Result == nil {
		return fmt.Errorf("job %s ended %s", snapshot.JobID, snapshot.Status)
	}

	wantTotal := int64(linesPerFile - linesPerFile/garbageEvery)
	if snapshot.Result.TotalRequests != wantTotal {
		return fmt.Errorf("total_requests = %d, want %d", snapshot.Result.TotalRequests, wantTotal)
	}
	var statusSum int64
	for _, count := range snapshot.Result.StatusCounts {
		statusSum += count
	}
	if statusSum != wantTotal {
		return fmt.Errorf("status counts sum to %d, want %d", statusSum, wantTotal)
	}
	found := false
	for _, pair := range snapshot.Result.TopPathsAgg {
		if pair[0] == "/search" {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("aggregated paths missing /search")
	}
	return nil
}

func uploadAndCancel(baseURL string, content []byte, timeout time.Duration) error {
	uploaded, err := upload(baseURL, "to-cancel.log", content)
	if err != nil {
		return err
	}
	resp, err := http.Post(baseURL+"/jobs/"+uploaded.JobID+"/cancel", "application/json", nil)
	if err != nil {
		return fmt.Errorf("cancel request failed: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cancel: HTTP %d", resp.StatusCode)
	}

	snapshot, err := pollUntilTerminal(baseURL, uploaded.JobID, timeout)
	if err != nil {
		return err
	}
	if snapshot.Status != "cancelled" && snapshot.Status != "done" {
		return fmt.Errorf("cancelled job ended %s", snapshot.Status)
	}
	fmt.Printf("Cancelled job ended %s at progress %.3f\n", snapshot.Status, snapshot.Progress)
	return nil
}

func upload(baseURL, filename string, content []byte) (*uploadResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Post(baseURL+"/upload", writer.FormDataContentType(), &body)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("upload: HTTP %d: %s", resp.StatusCode, raw)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &uploaded, nil
}

func pollUntilTerminal(baseURL, jobID string, timeout time.Duration) (*jobSnapshot, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/jobs/" + jobID)
		if err != nil {
			return nil, fmt.Errorf("poll failed: %w", err)
		}
		var snapshot jobSnapshot
		err = json.NewDecoder(resp.Body).Decode(&snapshot)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		switch snapshot.Status {
		case "done", "failed", "cancelled":
			return &snapshot, nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return nil, fmt.Errorf("job %s not terminal after %s", jobID, timeout)
}
