package ingestors

import (
	"context"
	"errors"
	"io"
	"strings"

	"serverlog-analyser/internal/jobs"
	"serverlog-analyser/internal/models"
	"serverlog-analyser/internal/shared/loggers"
	"serverlog-analyser/internal/shared/metrics"
	"serverlog-analyser/internal/shared/svcerrors"
	"serverlog-analyser/internal/stores"
)

const (
	maxFilenameLen = 1024

	SourceHTTP  = "http"
	SourceInbox = "inbox"
	SourceCLI   = "cli"
)

var errSizeLimitExceeded = errors.New("size limit exceeded")

// IngestResult is what the caller learns about an accepted upload.
type IngestResult struct {
	JobID         string           `json:"job_id"`
	Status        models.JobStatus `json:"status"`
	UploadedBytes int64            `json:"uploaded_bytes"`
}

//go:generate mockgen -source=upload_ingestion_service.go -destination=./mocks/upload_ingestion_service_mock.go -package=mocks
type UploadIngestionService interface {
	// IngestUpload stores the bytes of r under a fresh key and submits an analysis job for them.
	// source names the entry point ("http", "inbox", "cli") for metrics.
	IngestUpload(ctx context.Context, source, filename string, r io.Reader) (*IngestResult, error)
}

type uploadIngestionService struct {
	uploadStore stores.UploadStore
	scheduler   jobs.Scheduler
	maxBytes    int64
}

// NewUploadIngestionService rejects uploads above maxBytes; a non-positive maxBytes disables the limit.
func NewUploadIngestionService(uploadStore stores.UploadStore, scheduler jobs.Scheduler, maxBytes int64) UploadIngestionService {
	return &uploadIngestionService{
		uploadStore: uploadStore,
		scheduler:   scheduler,
		maxBytes:    maxBytes,
	}
}

func (s *uploadIngestionService) IngestUpload(ctx context.Context, source, filename string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Str(loggers.FieldFilename, filename).Msgf("started ingesting upload from %s", source)

	result, svcErr := s.ingest(ctx, source, filename, r)
	if svcErr != nil {
		metricUploadIngestedTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}
	metricUploadIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return result, nil
}

func (s *uploadIngestionService) ingest(ctx context.Context, source, filename string, r io.Reader) (*IngestResult, *svcerrors.ServiceError) {
	filename = strings.TrimSpace(filename)
	if err := s.validateUpload(filename, r); err != nil {
		return nil, err
	}

	if s.maxBytes > 0 {
		r = &sizeLimitedReader{r: r, remaining: s.maxBytes}
	}

	stored, err := s.uploadStore.Put(ctx, filename, r)
	if err != nil {
		if errors.Is(err, errSizeLimitExceeded) {
			return nil, errUploadTooLarge(s.maxBytes, err)
		}
		return nil, errInternalUploadStoreFailed(err)
	}
	metricUploadBytesTotal.WithLabelValues(source).Add(float64(stored.Size))

	jobID, err := s.scheduler.Submit(ctx, stored.Key, filename, stored.Size)
	if err != nil {
		return nil, errInternalJobSubmitFailed(err)
	}

	// the job may already have moved on (or failed to schedule) by now
	status := models.JobQueued
	if snapshot, svcErr := s.scheduler.Get(ctx, jobID); svcErr == nil {
		status = snapshot.Status
	}

	loggers.Ctx(ctx).Info().
		Str(loggers.FieldJobID, jobID).
		Str(loggers.FieldSourceKey, stored.Key).
		Int64("uploaded_bytes", stored.Size).
		Msg("upload accepted")

	return &IngestResult{JobID: jobID, Status: status, UploadedBytes: stored.Size}, nil
}

func (s *uploadIngestionService) validateUpload(filename string, r io.Reader) *svcerrors.ServiceError {
	if filename == "" {
		return errValidationFailed("filename is required", nil)
	}
	if len(filename) > maxFilenameLen {
		return errValidationFailed("filename too long: max 1024 characters", nil)
	}
	if r == nil {
		return errValidationFailed("empty upload body", nil)
	}
	return nil
}

// sizeLimitedReader fails the read that would take the total past the limit,
// so the storage layer discards the partial file.
type sizeLimitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *sizeLimitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, errSizeLimitExceeded
	}
	// read one byte past the limit to tell "exactly max" from "over max"
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return 0, errSizeLimitExceeded
	}
	return n, err
}
