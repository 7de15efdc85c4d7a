// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the number of resources requested per page. The remote API is
// queried with limit=PageSize and offset=(page-1)*PageSize.
const PageSize = 10

// Offset returns the number of items to skip for a 1-based page number.
// No clamping is applied; page 0 yields a negative offset.
func Offset(page int) int {
	return (page - 1) * PageSize
}

// TotalPages returns ceil(total / PageSize), or 0 when total is not positive.
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

// ParsePage extracts the 1-based "page" query parameter.
// Returns 0 (and false) if the parameter is missing or not a positive integer.
func ParsePage(r *http.Request) (int, bool) {
	s := query.Get(r, "page")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Range holds computed display values for one page of results.
type Range struct {
	Start   int // 1-based index of the first item shown (0 if none)
	End     int // 1-based index of the last item shown (0 if none)
	HasPrev bool
	HasNext bool
}

// ComputeRange calculates display values given the current page, the number
// of items actually shown, and the total page count.
func ComputeRange(page, shown, totalPages int) Range {
	rng := Range{
		HasPrev: page > 1,
		HasNext: page < totalPages,
	}
	if shown == 0 {
		return rng
	}
	rng.Start = Offset(page) + 1
	rng.End = rng.Start + shown - 1
	return rng
}
