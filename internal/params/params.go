package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// URL: /tabs/bookings?page=2
// → ParsePagination() → Pagination{Limit:20, Page:2, Offset:20}
// → the full list comes back from the backend in one response
// → ComputeMeta(len(list)) → fills TotalPages, HasNext, etc.
// → Window(len(list)) → slice bounds of the rows to render
// Pagination holds pagination info and computed metadata.
type Pagination struct {
	Limit      int // rows per page
	Offset     int // first row of the page
	Page       int // current page number
	Total      int // rows in the full list
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// DefaultLimit is the admin grid page size.
const DefaultLimit = 20

// ParsePagination parses ?limit=...&page=... safely. Keys are case sensitive.
func ParsePagination(q url.Values) Pagination {
	p := Pagination{
		Limit: DefaultLimit,
		Page:  1,
	}

	if limitStr := strings.TrimSpace(q.Get("limit")); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			switch {
			case limit <= 0:
				p.Limit = DefaultLimit
			case limit > 100:
				p.Limit = 100
			default:
				p.Limit = limit
			}
		}
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta updates pagination once the list length is known. A page past
// the end is pulled back to the last page.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	if p.TotalPages > 0 && p.Page > p.TotalPages {
		p.Page = p.TotalPages
		p.Offset = (p.Page - 1) * p.Limit
	}
	p.HasPrev = p.Page > 1
	p.HasNext = (p.Page * p.Limit) < total
}

// Window returns the [start, end) bounds of the current page within a list
// of total rows. Call ComputeMeta first.
func (p Pagination) Window(total int) (int, int) {
	start := min(p.Offset, total)
	end := min(start+p.Limit, total)
	return start, end
}

func (p Pagination) NextPage() int { return p.Page + 1 }
func (p Pagination) PrevPage() int { return p.Page - 1 }
