package extractors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternExtractor_Extract(t *testing.T) {
	t.Parallel()

	extractor := NewPatternExtractor()

	tests := []struct {
		name         string
		line         string
		wantIP       string
		wantMethod   string
		wantPath     string
		wantStatus   string
		wantDuration *float64
		wantUA       string
	}{
		{
			name:         "common format with duration",
			line:         `127.0.0.1 - - "GET /a HTTP/1.1" 200 123 0.10`,
			wantIP:       "127.0.0.1",
			wantMethod:   "GET",
			wantPath:     "/a",
			wantStatus:   "200",
			wantDuration: ptr(0.10),
		},
		{
			name:       "no duration",
			line:       `127.0.0.1 - - "GET /a HTTP/1.1" 404 50`,
			wantIP:     "127.0.0.1",
			wantMethod: "GET",
			wantPath:   "/a",
			wantStatus: "404",
		},
		{
			name:         "integer duration",
			line:         `10.0.0.7 - - [23/Jan/2026:12:00:01 +0000] "POST /api/v1/items?x=1 HTTP/2.0" 201 - 3`,
			wantIP:       "10.0.0.7",
			wantMethod:   "POST",
			wantPath:     "/api/v1/items?x=1",
			wantStatus:   "201",
			wantDuration: ptr(3),
		},
		{
			name:       "combined format carries a user agent",
			line:       `192.0.2.1 - - [23/Jan/2026:12:00:01 +0000] "GET /about HTTP/1.1" 200 512 "https://example.org/" "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"`,
			wantIP:     "192.0.2.1",
			wantMethod: "GET",
			wantPath:   "/about",
			wantStatus: "200",
			wantUA:     "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		},
		{
			name:         "timestamp before the address",
			line:         `2026-01-23 12:00:01 192.0.2.10 - - "GET /a HTTP/1.1" 200 123 0.11`,
			wantIP:       "192.0.2.10",
			wantMethod:   "GET",
			wantPath:     "/a",
			wantStatus:   "200",
			wantDuration: ptr(0.11),
		},
		{
			name:       "non address token with no address anywhere keeps the token",
			line:       `web-01 - - "DELETE /x HTTP/1.1" 500 0`,
			wantIP:     "web-01",
			wantMethod: "DELETE",
			wantPath:   "/x",
			wantStatus: "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			record, ok := extractor.Extract(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.wantIP, record.IP)
			assert.Equal(t, tt.wantMethod, record.Method)
			assert.Equal(t, tt.wantPath, record.Path)
			assert.Equal(t, tt.wantStatus, record.Status)
			assert.Equal(t, tt.wantUA, record.UserAgent)
			if tt.wantDuration == nil {
				assert.False(t, record.HasDuration())
			} else {
				require.True(t, record.HasDuration())
				assert.InDelta(t, *tt.wantDuration, *record.Duration, 1e-9)
			}
		})
	}
}

func TestPatternExtractor_Extract_NoMatch(t *testing.T) {
	t.Parallel()

	extractor := NewPatternExtractor()

	lines := []string{
		"",
		"   ",
		"2026-01-23 12:00:01 service started",
		`127.0.0.1 - - GET /a HTTP/1.1 200 123`,
		`127.0.0.1 - - "GET /a HTTP/1.1" 20 123`,
		`127.0.0.1 - - "GET /a HTTP/1.1" abc 123`,
	}

	for _, line := range lines {
		record, ok := extractor.Extract(line)
		assert.False(t, ok, "line %q should not match", line)
		assert.Nil(t, record)
	}
}

func TestPatternExtractor_ExtractTimestamp(t *testing.T) {
	t.Parallel()

	extractor := NewPatternExtractor()

	ts, ok := extractor.ExtractTimestamp(`2026-01-23 12:00:01 192.0.2.10 - - "GET /a HTTP/1.1" 200 123`)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 23, 12, 0, 1, 0, time.UTC), ts)

	// found on a line that is not a request
	ts, ok = extractor.ExtractTimestamp("worker restarted at 2025-12-31 23:59:59 after crash")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), ts)

	_, ok = extractor.ExtractTimestamp(`127.0.0.1 - - "GET /a HTTP/1.1" 200 123`)
	assert.False(t, ok)

	// shaped like a timestamp but not a valid date
	_, ok = extractor.ExtractTimestamp("2026-13-40 25:61:61 broken")
	assert.False(t, ok)
}

func ptr(v float64) *float64 {
	return &v
}
