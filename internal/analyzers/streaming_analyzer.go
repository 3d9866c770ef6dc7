package analyzers

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"serverlog-analyser/internal/aggregators"
	"serverlog-analyser/internal/extractors"
	"serverlog-analyser/internal/models"
	"serverlog-analyser/internal/shared/filestorages"
	"serverlog-analyser/internal/shared/loggers"
)

const (
	// progressCap keeps in-flight progress below the final report.
	progressCap = 0.99
	// finalProgress is reported once the stream is exhausted, before finalization.
	finalProgress = 0.999
	// sizeBlindLines is the line count treated as "complete" when the source size is unknown.
	sizeBlindLines = 100000

	progressStep     = 0.01
	progressInterval = 200

	readBufferSize = 64 * 1024
)

// ProgressFunc receives progress reports of one run. Fractions never decrease.
type ProgressFunc func(progress models.Progress)

// CancelFunc is polled once per line; true aborts the run.
type CancelFunc func() bool

// SourceReader is the storage a run reads from.
type SourceReader interface {
	Stat(ctx context.Context, key string) (*filestorages.FileInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

//go:generate mockgen -source=streaming_analyzer.go -destination=./mocks/streaming_analyzer_mock.go -package=mocks
type StreamingAnalyzer interface {
	// Analyze reads the source line by line and returns the finalized result.
	// It returns ErrCancelled when cancellation was observed and a *SourceReadError
	// when the source could not be opened or read.
	Analyze(ctx context.Context, sourceKey string, onProgress ProgressFunc, isCancelled CancelFunc) (*models.AnalysisResult, error)
}

type streamingAnalyzer struct {
	source    SourceReader
	extractor extractors.PatternExtractor
	limits    aggregators.Limits
}

func NewStreamingAnalyzer(source SourceReader, extractor extractors.PatternExtractor, limits aggregators.Limits) StreamingAnalyzer {
	return &streamingAnalyzer{source: source, extractor: extractor, limits: limits}
}

func (a *streamingAnalyzer) Analyze(ctx context.Context, sourceKey string, onProgress ProgressFunc, isCancelled CancelFunc) (*models.AnalysisResult, error) {
	start := time.Now()
	result, err := a.analyze(ctx, sourceKey, onProgress, isCancelled)

	outcome := outcomeDone
	switch {
	case errors.Is(err, ErrCancelled):
		outcome = outcomeCancelled
	case err != nil:
		outcome = outcomeFailed
	}
	metricRunDurationSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return result, err
}

func (a *streamingAnalyzer) analyze(ctx context.Context, sourceKey string, onProgress ProgressFunc, isCancelled CancelFunc) (*models.AnalysisResult, error) {
	logger := loggers.Ctx(ctx)

	// the size probe is best effort, an unknown size switches to the line-count estimate
	var totalBytes int64
	if info, err := a.source.Stat(ctx, sourceKey); err == nil {
		totalBytes = info.Size
	} else {
		logger.Debug().Err(err).Str(loggers.FieldSourceKey, sourceKey).Msg("source size unknown, estimating progress by lines")
	}

	rc, err := a.source.Get(ctx, sourceKey)
	if err != nil {
		return nil, &SourceReadError{SourceKey: sourceKey, Err: err}
	}
	defer rc.Close()

	tracker := newProgressTracker(totalBytes, onProgress)
	aggregator := aggregators.NewLogAggregator()
	reader := bufio.NewReaderSize(rc, readBufferSize)

	var matched, unmatched int64
	defer func() {
		metricLinesProcessedTotal.WithLabelValues(lineMatched).Add(float64(matched))
		metricLinesProcessedTotal.WithLabelValues(lineUnmatched).Add(float64(unmatched))
	}()

	for {
		if ctx.Err() != nil || (isCancelled != nil && isCancelled()) {
			return nil, ErrCancelled
		}

		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, &SourceReadError{SourceKey: sourceKey, Err: readErr}
		}
		if raw == "" {
			break
		}

		line := strings.TrimRight(raw, "\r\n")
		aggregator.CountLine()
		if record, ok := a.extractor.Extract(line); ok {
			aggregator.Record(record)
			matched++
		} else {
			unmatched++
		}
		if ts, ok := a.extractor.ExtractTimestamp(line); ok {
			aggregator.ObserveTimestamp(ts)
		}

		tracker.advance(int64(len(raw)))

		if readErr != nil {
			break
		}
	}

	tracker.finish()

	return aggregator.Finalize(a.limits), nil
}

type progressTracker struct {
	totalBytes  int64
	bytesRead   int64
	linesParsed int64
	lastEmitted float64
	onProgress  ProgressFunc
}

func newProgressTracker(totalBytes int64, onProgress ProgressFunc) *progressTracker {
	return &progressTracker{totalBytes: totalBytes, onProgress: onProgress}
}

func (t *progressTracker) advance(n int64) {
	t.bytesRead += n
	t.linesParsed++

	fraction := t.fraction()
	if fraction-t.lastEmitted >= progressStep || t.linesParsed%progressInterval == 0 {
		t.emit(fraction)
	}
}

func (t *progressTracker) fraction() float64 {
	var f float64
	if t.totalBytes > 0 {
		f = float64(t.bytesRead) / float64(t.totalBytes)
	} else {
		f = float64(t.linesParsed) / sizeBlindLines
	}
	return min(progressCap, f)
}

func (t *progressTracker) finish() {
	t.emit(finalProgress)
}

func (t *progressTracker) emit(fraction float64) {
	t.lastEmitted = fraction
	if t.onProgress == nil {
		return
	}
	t.onProgress(models.Progress{
		Fraction:    fraction,
		BytesRead:   t.bytesRead,
		LinesParsed: t.linesParsed,
	})
}
