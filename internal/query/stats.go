package query

// Stats summarizes a filtered record set
type Stats struct {
	Total        int            `json:"total"`
	Active       int            `json:"active"`
	Inactive     int            `json:"inactive"`
	Distribution map[string]int `json:"distribution"`
}

// ComputeStats counts active/inactive records and groups them by the
// display value returned by group.
func ComputeStats[T any](records []T, isActive func(T) bool, group func(T) string) Stats {
	s := Stats{
		Total:        len(records),
		Distribution: make(map[string]int),
	}
	for _, rec := range records {
		if isActive != nil && isActive(rec) {
			s.Active++
		} else {
			s.Inactive++
		}
		if group != nil {
			s.Distribution[group(rec)]++
		}
	}
	return s
}
