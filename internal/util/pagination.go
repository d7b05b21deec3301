package util

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Calculate turns a 1-based page and a size into an offset and limit.
// Out of range values fall back to the first page and the default size.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return (page - 1) * size, size
}

// FromQuery is Calculate over raw query parameters; unparsable values count as absent.
func FromQuery(page, size string) (from, limit int) {
	p, _ := strconv.Atoi(page)
	s, _ := strconv.Atoi(size)
	return Calculate(p, s)
}
