package request

import (
	"net/http"
	"strconv"
)

// Pagination holds the cursor window for list endpoints. The cursor is the
// id of the last item on the previous page.
type Pagination struct {
	Limit  int
	Cursor string
}

// Page size bounds for project, user, and agent listings. The ceiling keeps
// a single request from scanning an entire tenant's resources.
const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// ParsePagination reads limit and cursor from the query string. Absent,
// malformed, or non-positive limits fall back to DefaultLimit; oversized
// ones are clamped to MaxLimit.
func ParsePagination(r *http.Request) Pagination {
	p := Pagination{
		Limit:  DefaultLimit,
		Cursor: r.URL.Query().Get("cursor"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			p.Limit = limit
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	return p
}
