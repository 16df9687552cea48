package query

// Page is one window of an ordered record list
type Page[T any] struct {
	Records    []T
	Page       int
	Limit      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// Paginate slices records for the requested page. Pages past the end yield
// an empty window; the page number is not clamped.
func Paginate[T any](records []T, page, limit int) Page[T] {
	if limit < 1 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}

	total := len(records)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	// page-1 < totalPages bounds the product by total, so it cannot overflow.
	window := []T{}
	if page-1 < totalPages {
		start := (page - 1) * limit
		end := start + min(limit, total-start)
		window = records[start:end]
	}

	return Page[T]{
		Records:    window,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
