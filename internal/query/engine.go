package query

// Schema binds the generic engine to one record type
type Schema[T any] struct {
	Name        string
	Defaults    Defaults
	SortKeys    map[string]SortKey[T]
	DefaultSort string

	// Predicate builds the filter conjunction for a spec
	Predicate func(Spec) Predicate[T]
	IsActive  func(T) bool
	Group     func(T) string
}

// Result is one page of query output plus the aggregates around it
type Result[T any] struct {
	Records       []T   `json:"data"`
	Total         int   `json:"total"`
	TotalFiltered int   `json:"totalFiltered"`
	Stats         Stats `json:"stats"`
	Page          int   `json:"page"`
	Limit         int   `json:"limit"`
	TotalPages    int   `json:"totalPages"`
	HasNext       bool  `json:"hasNext"`
	HasPrev       bool  `json:"hasPrev"`
}

// Parse reads a spec using the schema's defaults
func (s *Schema[T]) Parse(values map[string][]string) Spec {
	return ParseSpec(values, s.Defaults)
}

// SortKey resolves sortBy, falling back to the schema default for unknown
// fields.
func (s *Schema[T]) SortKey(sortBy string) SortKey[T] {
	if k, ok := s.SortKeys[sortBy]; ok {
		return k
	}
	return s.SortKeys[s.DefaultSort]
}

// Filter applies the schema predicate for spec
func (s *Schema[T]) Filter(all []T, spec Spec) []T {
	var pred Predicate[T]
	if s.Predicate != nil {
		pred = s.Predicate(spec)
	}
	return Filter(all, pred)
}

// Sort orders records per spec
func (s *Schema[T]) Sort(records []T, spec Spec) []T {
	return Sort(records, s.SortKey(spec.SortBy), spec.SortOrder)
}

// Run filters, sorts, aggregates and paginates. The input slice is not
// modified.
func Run[T any](s *Schema[T], all []T, spec Spec) Result[T] {
	filtered := s.Filter(all, spec)
	sorted := s.Sort(filtered, spec)
	page := Paginate(sorted, spec.Page, spec.Limit)

	return Result[T]{
		Records:       page.Records,
		Total:         len(all),
		TotalFiltered: len(filtered),
		Stats:         ComputeStats(filtered, s.IsActive, s.Group),
		Page:          page.Page,
		Limit:         page.Limit,
		TotalPages:    page.TotalPages,
		HasNext:       page.HasNext,
		HasPrev:       page.HasPrev,
	}
}

// Select returns every record matching spec in sorted order, without
// pagination. Used by exports.
func Select[T any](s *Schema[T], all []T, spec Spec) []T {
	return s.Sort(s.Filter(all, spec), spec)
}
