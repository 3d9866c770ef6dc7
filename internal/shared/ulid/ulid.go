package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID returns a fresh, lexicographically sortable id. It is a var so tests can pin ids.
var NewULID = func() string {
	return ulid.Make().String()
}

// NewPrefixed returns prefix followed by a fresh ULID, e.g. "job-01HZX3Q1J6P4K2ZB7Y5T0V9W8C".
func NewPrefixed(prefix string) string {
	return prefix + NewULID()
}
