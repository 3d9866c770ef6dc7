package analyzers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"serverlog-analyser/internal/aggregators"
	"serverlog-analyser/internal/extractors"
	"serverlog-analyser/internal/models"
	"serverlog-analyser/internal/shared/filestorages"
	"serverlog-analyser/internal/shared/filestorages/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testLimits = aggregators.Limits{TopPaths: 20, TopIPs: 20, TopUserAgents: 10, AggregatedLimit: 500}

func newStoredAnalyzer(t *testing.T, key, content string) StreamingAnalyzer {
	t.Helper()
	storage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	_, err = storage.Put(context.Background(), key, strings.NewReader(content))
	require.NoError(t, err)
	return NewStreamingAnalyzer(storage, extractors.NewPatternExtractor(), testLimits)
}

type progressRecorder struct {
	reports []models.Progress
}

func (r *progressRecorder) record(p models.Progress) {
	r.reports = append(r.reports, p)
}

func neverCancelled() bool { return false }

func TestAnalyze_StatusAddressAndTimings(t *testing.T) {
	t.Parallel()

	content := `127.0.0.1 - - "GET /a HTTP/1.1" 200 123 0.10
127.0.0.1 - - "GET /a HTTP/1.1" 200 123 0.10
127.0.0.1 - - "GET /a HTTP/1.1" 404 50
`
	analyzer := newStoredAnalyzer(t, "uploads/a.log", content)

	result, err := analyzer.Analyze(context.Background(), "uploads/a.log", nil, neverCancelled)
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.TotalRequests)
	assert.Equal(t, map[string]int64{"200": 2, "404": 1}, result.StatusCounts)
	assert.Equal(t, []models.RankedCount{{Key: "127.0.0.1", Count: 3}}, result.TopIPs)
	assert.Equal(t, 0.10, result.Timings.Min)
}

func TestAnalyze_AggregatedPaths(t *testing.T) {
	t.Parallel()

	content := `10.0.0.1 - - "GET /aides/?page=1 HTTP/1.1" 200 10
10.0.0.1 - - "GET /aides/?page=2 HTTP/1.1" 200 10
10.0.0.2 - - "GET /aides/exporter/?x=1 HTTP/1.1" 200 10
`
	analyzer := newStoredAnalyzer(t, "uploads/b.log", content)

	result, err := analyzer.Analyze(context.Background(), "uploads/b.log", nil, neverCancelled)
	require.NoError(t, err)

	assert.Contains(t, result.TopPathsAggregated, models.RankedCount{Key: "/aides", Count: 2})
	assert.Contains(t, result.TopPathsAggregated, models.RankedCount{Key: "/aides/exporter", Count: 1})
}

func TestAnalyze_TimestampBeforeAddress(t *testing.T) {
	t.Parallel()

	content := "2026-01-23 12:00:01 app-7 203.0.113.9 \"GET /a HTTP/1.1\" 200 12 0.2\n" +
		"2026-01-23 12:00:09 app-7 203.0.113.9 \"GET /b HTTP/1.1\" 200 12 0.4\n"
	analyzer := newStoredAnalyzer(t, "uploads/c.log", content)

	result, err := analyzer.Analyze(context.Background(), "uploads/c.log", nil, neverCancelled)
	require.NoError(t, err)

	assert.Equal(t, []models.RankedCount{{Key: "203.0.113.9", Count: 2}}, result.TopIPs)
	require.NotNil(t, result.StartTime)
	assert.Equal(t, "2026-01-23 12:00:01", *result.StartTime)
	assert.Equal(t, "2026-01-23 12:00:09", *result.EndTime)
	assert.Equal(t, 8.0, result.DurationSeconds)
	assert.Equal(t, "0:00:08", result.Duration)
}

func TestAnalyze_BlankLinesOnly(t *testing.T) {
	t.Parallel()

	analyzer := newStoredAnalyzer(t, "uploads/d.log", "\n\n\n\n")

	result, err := analyzer.Analyze(context.Background(), "uploads/d.log", nil, neverCancelled)
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.TotalRequests)
	assert.Empty(t, result.StatusCounts)
	assert.Empty(t, result.TopPaths)
	assert.Empty(t, result.TopPathsAggregated)
	assert.Empty(t, result.TopIPs)
	assert.Equal(t, models.Timings{}, result.Timings)
	assert.Nil(t, result.StartTime)
}

func TestAnalyze_LastLineWithoutNewlineAndCRLF(t *testing.T) {
	t.Parallel()

	content := "10.0.0.1 - - \"GET /a HTTP/1.1\" 200 1 0.5\r\n10.0.0.1 - - \"GET /b HTTP/1.1\" 500 1 1.5"
	analyzer := newStoredAnalyzer(t, "uploads/e.log", content)

	result, err := analyzer.Analyze(context.Background(), "uploads/e.log", nil, neverCancelled)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.TotalRequests)
	assert.Equal(t, map[string]int64{"200": 1, "500": 1}, result.StatusCounts)
	assert.Equal(t, 1.5, result.Timings.P99)
}

func TestAnalyze_ProgressIsMonotonicAndEndsBelowOne(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 450; i++ {
		fmt.Fprintf(&b, "10.0.0.%d - - \"GET /p/%d HTTP/1.1\" 200 10 0.01\n", i%250, i)
	}
	content := b.String()
	analyzer := newStoredAnalyzer(t, "uploads/big.log", content)

	recorder := &progressRecorder{}
	_, err := analyzer.Analyze(context.Background(), "uploads/big.log", recorder.record, neverCancelled)
	require.NoError(t, err)

	require.NotEmpty(t, recorder.reports)
	for i := 1; i < len(recorder.reports); i++ {
		assert.GreaterOrEqual(t, recorder.reports[i].Fraction, recorder.reports[i-1].Fraction)
		assert.GreaterOrEqual(t, recorder.reports[i].LinesParsed, recorder.reports[i-1].LinesParsed)
	}

	inFlight := recorder.reports[:len(recorder.reports)-1]
	for _, p := range inFlight {
		assert.LessOrEqual(t, p.Fraction, 0.99)
	}
	assert.Greater(t, inFlight[len(inFlight)-1].Fraction, 0.97)

	last := recorder.reports[len(recorder.reports)-1]
	assert.Equal(t, 0.999, last.Fraction)
	assert.Equal(t, int64(450), last.LinesParsed)
	assert.Equal(t, int64(len(content)), last.BytesRead)
}

func TestAnalyze_SizeUnknownFallsBackToLineEstimate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockFileStorage(ctrl)

	var b strings.Builder
	for i := 0; i < 400; i++ {
		b.WriteString("not a request line\n")
	}

	source.EXPECT().Stat(gomock.Any(), "uploads/x.log").Return(nil, errors.New("stat unsupported"))
	source.EXPECT().Get(gomock.Any(), "uploads/x.log").Return(io.NopCloser(strings.NewReader(b.String())), nil)

	recorder := &progressRecorder{}
	analyzer := NewStreamingAnalyzer(source, extractors.NewPatternExtractor(), testLimits)
	result, err := analyzer.Analyze(context.Background(), "uploads/x.log", recorder.record, neverCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(400), result.TotalRequests)

	// one report every 200 lines, then the final one
	require.Len(t, recorder.reports, 3)
	assert.InDelta(t, 0.002, recorder.reports[0].Fraction, 1e-9)
	assert.InDelta(t, 0.004, recorder.reports[1].Fraction, 1e-9)
	assert.Equal(t, 0.999, recorder.reports[2].Fraction)
}

func TestAnalyze_CancelledMidStream(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 100; i++ {
		b.WriteString("10.0.0.1 - - \"GET /a HTTP/1.1\" 200 1\n")
	}
	analyzer := newStoredAnalyzer(t, "uploads/cancel.log", b.String())

	polls := 0
	isCancelled := func() bool {
		polls++
		return polls > 10
	}
	recorder := &progressRecorder{}

	result, err := analyzer.Analyze(context.Background(), "uploads/cancel.log", recorder.record, isCancelled)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 11, polls)
	for _, p := range recorder.reports {
		assert.Less(t, p.Fraction, 0.999)
		assert.LessOrEqual(t, p.LinesParsed, int64(10))
	}
}

func TestAnalyze_CancelledBeforeFirstLine(t *testing.T) {
	t.Parallel()

	analyzer := newStoredAnalyzer(t, "uploads/early.log", "10.0.0.1 - - \"GET /a HTTP/1.1\" 200 1\n")

	recorder := &progressRecorder{}
	result, err := analyzer.Analyze(context.Background(), "uploads/early.log", recorder.record, func() bool { return true })
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, recorder.reports)
}

func TestAnalyze_ContextDoneCountsAsCancelled(t *testing.T) {
	t.Parallel()

	analyzer := newStoredAnalyzer(t, "uploads/ctx.log", "10.0.0.1 - - \"GET /a HTTP/1.1\" 200 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := analyzer.Analyze(ctx, "uploads/ctx.log", nil, neverCancelled)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestAnalyze_MissingSource(t *testing.T) {
	t.Parallel()

	storage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	analyzer := NewStreamingAnalyzer(storage, extractors.NewPatternExtractor(), testLimits)

	result, err := analyzer.Analyze(context.Background(), "uploads/missing.log", nil, neverCancelled)
	assert.Nil(t, result)

	var readErr *SourceReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "uploads/missing.log", readErr.SourceKey)
	assert.ErrorIs(t, err, filestorages.ErrFileNotFound)
	assert.NotErrorIs(t, err, ErrCancelled)
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestAnalyze_ReadErrorMidStream(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockFileStorage(ctrl)
	diskErr := errors.New("input/output error")

	source.EXPECT().Stat(gomock.Any(), "uploads/bad.log").Return(&filestorages.FileInfo{FileKey: "uploads/bad.log", Size: 4096}, nil)
	source.EXPECT().Get(gomock.Any(), "uploads/bad.log").Return(io.NopCloser(&failingReader{
		data: "10.0.0.1 - - \"GET /a HTTP/1.1\" 200 1\n10.0.0.1 - - \"GET",
		err:  diskErr,
	}), nil)

	analyzer := NewStreamingAnalyzer(source, extractors.NewPatternExtractor(), testLimits)
	result, err := analyzer.Analyze(context.Background(), "uploads/bad.log", nil, neverCancelled)
	assert.Nil(t, result)

	var readErr *SourceReadError
	require.ErrorAs(t, err, &readErr)
	assert.ErrorIs(t, err, diskErr)
}
