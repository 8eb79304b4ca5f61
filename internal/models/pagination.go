package models

// Pagination selects a page of a listing. A zero PageSize means "everything".
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultPagination returns the page size used by list views.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, PageSize: 50}
}

// All requests every row in one page.
func All() Pagination {
	return Pagination{Page: 1}
}

// Unbounded reports whether the listing should not be limited.
func (p Pagination) Unbounded() bool {
	return p.PageSize <= 0
}

// Offset is the number of rows skipped before the page.
func (p Pagination) Offset() int {
	if p.Unbounded() || p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit is the page size capped at 500; -1 when unbounded.
func (p Pagination) Limit() int {
	switch {
	case p.Unbounded():
		return -1
	case p.PageSize > 500:
		return 500
	default:
		return p.PageSize
	}
}

// TotalPages computes how many pages total rows span. Never less than 1.
func (p Pagination) TotalPages(total int) int {
	if p.Unbounded() || total == 0 {
		return 1
	}
	size := p.Limit()
	return (total + size - 1) / size
}

// Window slices items according to the page. Used by stores without SQL.
func Window[T any](items []T, p Pagination) []T {
	if p.Unbounded() {
		return items
	}
	start := p.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + p.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
