package models

// Pagination limits. PageSizeOptions is what the management screen offers;
// MaxPageSize is what the portal will pass through to the backend.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageSizeOptions are the selectable page sizes on the management screen.
var PageSizeOptions = []int{5, 10, 25, 50}

// ListQuery holds the parameters driving a customer list fetch.
// Page is 0-based inside the portal and translated to the backend's
// 1-based numbering on the wire.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
}

// Normalize clamps the query into a valid range and applies defaults.
func (q *ListQuery) Normalize() {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

// BackendPage returns the 1-based page number the backend expects.
func (q ListQuery) BackendPage() int {
	return q.Page + 1
}

// TotalPages returns the number of pages needed for total records at the
// query's page size.
func (q ListQuery) TotalPages(total int64) int {
	if q.PageSize < 1 {
		return 0
	}
	pages := int(total) / q.PageSize
	if int(total)%q.PageSize > 0 {
		pages++
	}
	return pages
}

// HasPrev reports whether a previous page exists.
func (q ListQuery) HasPrev() bool {
	return q.Page > 0
}

// HasNext reports whether a next page exists for total records.
func (q ListQuery) HasNext(total int64) bool {
	return q.Page+1 < q.TotalPages(total)
}
