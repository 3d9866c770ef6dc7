package models

// LogRecord is the structured form of one matched access-log line.
// Records are consumed immediately by the aggregator and never retained.
type LogRecord struct {
	IP        string
	Method    string
	Path      string
	Status    string // always three digits
	Duration  *float64
	UserAgent string
}

// HasDuration reports whether the line carried a parsable response time.
func (r *LogRecord) HasDuration() bool {
	return r.Duration != nil
}
