package aggregators

import (
	"fmt"
	"time"

	"serverlog-analyser/internal/models"

	"github.com/mileusna/useragent"
)

// Limits caps the length of each ranking in a finalized result.
type Limits struct {
	TopPaths        int
	TopIPs          int
	TopUserAgents   int
	AggregatedLimit int
}

// LogAggregator accumulates the statistics of one analysis run.
// It is not safe for concurrent use; each run owns its aggregator.
type LogAggregator struct {
	totalRequests        int64
	statusCounts         *FrequencyMap
	rawPathCounts        *FrequencyMap
	normalizedPathCounts *FrequencyMap
	ipCounts             *FrequencyMap
	userAgentCounts      *FrequencyMap
	durations            []float64
	minTS                *time.Time
	maxTS                *time.Time
}

func NewLogAggregator() *LogAggregator {
	return &LogAggregator{
		statusCounts:         NewFrequencyMap(),
		rawPathCounts:        NewFrequencyMap(),
		normalizedPathCounts: NewFrequencyMap(),
		ipCounts:             NewFrequencyMap(),
		userAgentCounts:      NewFrequencyMap(),
	}
}

// CountLine counts one line towards total_requests, matched or not.
func (a *LogAggregator) CountLine() {
	a.totalRequests++
}

// Record folds one matched line into the frequency maps.
func (a *LogAggregator) Record(record *models.LogRecord) {
	a.statusCounts.Inc(record.Status)
	a.rawPathCounts.Inc(record.Path)
	a.normalizedPathCounts.Inc(NormalizePath(record.Path))
	a.ipCounts.Inc(record.IP)
	if record.UserAgent != "" && record.UserAgent != "-" {
		a.userAgentCounts.Inc(userAgentFamily(record.UserAgent))
	}
	if record.Duration != nil {
		a.durations = append(a.durations, *record.Duration)
	}
}

// ObserveTimestamp widens the observed time span.
func (a *LogAggregator) ObserveTimestamp(ts time.Time) {
	if a.minTS == nil || ts.Before(*a.minTS) {
		t := ts
		a.minTS = &t
	}
	if a.maxTS == nil || ts.After(*a.maxTS) {
		t := ts
		a.maxTS = &t
	}
}

// TotalRequests returns the number of lines counted so far.
func (a *LogAggregator) TotalRequests() int64 {
	return a.totalRequests
}

// Finalize builds the result document from the accumulated state.
func (a *LogAggregator) Finalize(limits Limits) *models.AnalysisResult {
	metricDistinctKeys.WithLabelValues(dimensionPath).Observe(float64(a.rawPathCounts.Len()))
	metricDistinctKeys.WithLabelValues(dimensionNormalizedPath).Observe(float64(a.normalizedPathCounts.Len()))
	metricDistinctKeys.WithLabelValues(dimensionIP).Observe(float64(a.ipCounts.Len()))
	metricDistinctKeys.WithLabelValues(dimensionUserAgent).Observe(float64(a.userAgentCounts.Len()))

	result := &models.AnalysisResult{
		TotalRequests:      a.totalRequests,
		StatusCounts:       a.statusCounts.ToMap(),
		TopPaths:           a.rawPathCounts.MostCommon(limits.TopPaths),
		TopPathsAggregated: a.normalizedPathCounts.MostCommon(limits.AggregatedLimit),
		TopIPs:             a.ipCounts.MostCommon(limits.TopIPs),
		TopUserAgents:      a.userAgentCounts.MostCommon(limits.TopUserAgents),
		Timings:            ComputeTimings(a.durations),
	}

	if a.minTS != nil && a.maxTS != nil {
		start := a.minTS.Format(models.TimestampLayout)
		end := a.maxTS.Format(models.TimestampLayout)
		elapsed := a.maxTS.Sub(*a.minTS)
		result.StartTime = &start
		result.EndTime = &end
		result.DurationSeconds = elapsed.Seconds()
		result.Duration = FormatElapsed(elapsed)
	}

	return result
}

// FormatElapsed renders d as "H:MM:SS", prefixed with "N day(s), " beyond 24 hours.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int64(d / time.Second)
	days := total / 86400
	rest := total % 86400
	clock := fmt.Sprintf("%d:%02d:%02d", rest/3600, (rest%3600)/60, rest%60)

	switch {
	case days == 1:
		return "1 day, " + clock
	case days > 1:
		return fmt.Sprintf("%d days, %s", days, clock)
	default:
		return clock
	}
}

// userAgentFamily parses the user agent to extract its family, or returns it unchanged.
func userAgentFamily(ua string) string {
	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}
	return ua
}
