package docstore

import "strconv"

const (
	// DefaultPageSize applies when the size parameter is missing or unusable.
	DefaultPageSize = 10

	// DefaultMaxPageSize caps a single page when no explicit cap is configured.
	DefaultMaxPageSize = 100
)

// PageWindow bounds a list query to a slice of the collection's natural order.
type PageWindow struct {
	Offset int64
	Limit  int64
}

// ResolveWindow converts textual page/size query parameters into a bounded
// window. Bad input never fails: a missing or non-numeric size falls back to
// DefaultPageSize, a missing or non-numeric page to 0. Non-positive sizes get
// the default too, and size is clamped to maxSize so one request can never
// demand an unbounded result set.
func ResolveWindow(page, size string, maxSize int) PageWindow {
	if maxSize <= 0 {
		maxSize = DefaultMaxPageSize
	}

	s, err := strconv.Atoi(size)
	if err != nil || s <= 0 {
		s = DefaultPageSize
	}
	if s > maxSize {
		s = maxSize
	}

	p, err := strconv.Atoi(page)
	if err != nil || p < 0 {
		p = 0
	}

	return PageWindow{
		Offset: int64(p) * int64(s),
		Limit:  int64(s),
	}
}
