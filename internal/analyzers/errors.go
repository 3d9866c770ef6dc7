package analyzers

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when a run observed a cancel request before the stream ended.
var ErrCancelled = errors.New("analysis cancelled")

// SourceReadError reports that the source could not be opened or read.
type SourceReadError struct {
	SourceKey string
	Err       error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read source %q: %v", e.SourceKey, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}
