package extractors

import (
	"regexp"
	"strconv"
	"time"

	"serverlog-analyser/internal/models"
)

var (
	// requestLinePattern recognizes `<token> ... "<METHOD> <PATH> ..." <STATUS> <SIZE> [<DURATION>]...`.
	requestLinePattern = regexp.MustCompile(`^(?P<ip>\S+) .* "(?P<method>\S+) (?P<path>\S+) .*" (?P<status>\d{3}) (?P<size>\S+)(?: (?P<duration>\d+(?:\.\d+)?))?(?P<tail>.*)$`)

	ipv4TokenPattern  = regexp.MustCompile(`^(?:\d{1,3}\.){3}\d{1,3}$`)
	ipv4SearchPattern = regexp.MustCompile(`(?:\d{1,3}\.){3}\d{1,3}`)
	timestampPattern  = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)

	// userAgentPattern picks the second of two quoted fields after the status, as in the combined format.
	userAgentPattern = regexp.MustCompile(`"[^"]*" "([^"]*)"`)
)

var (
	groupIP       = requestLinePattern.SubexpIndex("ip")
	groupMethod   = requestLinePattern.SubexpIndex("method")
	groupPath     = requestLinePattern.SubexpIndex("path")
	groupStatus   = requestLinePattern.SubexpIndex("status")
	groupDuration = requestLinePattern.SubexpIndex("duration")
	groupTail     = requestLinePattern.SubexpIndex("tail")
)

// PatternExtractor turns raw access-log lines into records.
type PatternExtractor interface {
	// Extract parses one line without its trailing newline. ok is false when the line
	// does not carry a quoted request followed by a status code.
	Extract(line string) (record *models.LogRecord, ok bool)
	// ExtractTimestamp returns the first "YYYY-MM-DD HH:MM:SS" found anywhere in the line.
	ExtractTimestamp(line string) (ts time.Time, ok bool)
}

type patternExtractor struct{}

func NewPatternExtractor() PatternExtractor {
	return &patternExtractor{}
}

func (e *patternExtractor) Extract(line string) (*models.LogRecord, bool) {
	m := requestLinePattern.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	record := &models.LogRecord{
		IP:     resolveIP(m[groupIP], line),
		Method: m[groupMethod],
		Path:   m[groupPath],
		Status: m[groupStatus],
	}

	if raw := m[groupDuration]; raw != "" {
		// malformed durations are dropped, the rest of the record stands
		if d, err := strconv.ParseFloat(raw, 64); err == nil {
			record.Duration = &d
		}
	}

	if ua := userAgentPattern.FindStringSubmatch(m[groupTail]); ua != nil {
		record.UserAgent = ua[1]
	}

	return record, true
}

func (e *patternExtractor) ExtractTimestamp(line string) (time.Time, bool) {
	raw := timestampPattern.FindString(line)
	if raw == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(models.TimestampLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// resolveIP keeps the leading token when it is a dotted quad, otherwise it falls back to the
// first dotted quad found in the line (logs that put a timestamp before the client address).
func resolveIP(token, line string) string {
	if ipv4TokenPattern.MatchString(token) {
		return token
	}
	if found := ipv4SearchPattern.FindString(line); found != "" {
		return found
	}
	return token
}
