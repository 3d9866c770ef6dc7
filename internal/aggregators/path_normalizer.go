package aggregators

import "strings"

// NormalizePath drops the query string, the fragment and trailing slashes, so that
// "/aides/?page=1" and "/aides/?page=2" both count as "/aides". A path made only of
// slashes collapses to the root "/".
func NormalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if trimmed := strings.TrimRight(path, "/"); trimmed != path {
		if trimmed == "" {
			return "/"
		}
		path = trimmed
	}
	return path
}
