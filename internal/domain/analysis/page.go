package analysis

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizePage clamps a 0-based page index and page size. The page is
// capped so that page*size always fits in an int.
func NormalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page > math.MaxInt/size {
		page = math.MaxInt / size
	}
	return page, size
}

func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
