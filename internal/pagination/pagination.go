// Package pagination slices ordered result sets into fixed-size pages.
package pagination

// PageSize is the number of items shown on every feed page.
const PageSize = 10

// Page is one window into an ordered result set together with enough
// metadata for clients to render pager controls.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginate returns the requested page of items. Page numbers are clamped
// rather than rejected: anything below 1 becomes the first page and anything
// past the end becomes the last page. An empty input still yields a single
// empty page so callers always have something to render.
func Paginate[T any](items []T, page int) Page[T] {
	total := len(items)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		Number:      page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
