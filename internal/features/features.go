// Package features extracts derived columns from raw analytics dimension
// values: page-path level decomposition and source/medium splitting.
package features

import (
	"errors"
	"strings"
)

// ErrEmptyPath is returned when a page path is empty after normalization.
// Shallow-but-present paths are normal; a truly empty path means the caller
// handed us something that was never a path.
var ErrEmptyPath = errors.New("features: empty page path")

const (
	pathSeparator = "/"

	// SourceMediumSeparator is the fixed separator the reporting API uses in
	// the sourceMedium dimension.
	SourceMediumSeparator = " / "

	// entranceValue is the placeholder the reporting API emits for previous
	// page path when a page was the session entrance. It is treated as a
	// single-level path.
	entranceValue = "(entrance)"
)

// PagePathLevels splits a page path into its levels. The "(entrance)"
// placeholder becomes the one-level path ["entrance"]; one leading separator
// is stripped before splitting, so "/shop/cart" and "shop/cart" decompose
// identically.
func PagePathLevels(pagePath string) ([]string, error) {
	if pagePath == entranceValue {
		pagePath = "/entrance"
	}
	pagePath = strings.TrimPrefix(pagePath, pathSeparator)
	if pagePath == "" {
		return nil, ErrEmptyPath
	}
	return strings.Split(pagePath, pathSeparator), nil
}

// PagePathLevel returns the nth (1-indexed) level of a decomposed page path.
// The second return value is false when n exceeds the number of levels; a
// shallow path is an expected condition, not an error.
func PagePathLevel(levels []string, n int) (string, bool) {
	if n < 1 || n > len(levels) {
		return "", false
	}
	return levels[n-1], true
}

// SourceMedium splits a sourceMedium dimension value into its source and
// medium parts. Values without the separator, such as "(direct)", yield
// ok=false with both parts empty; missing source/medium data is common in
// analytics exports and must not fail the pipeline.
func SourceMedium(value string) (source, medium string, ok bool) {
	parts := strings.SplitN(value, SourceMediumSeparator, 2)
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
