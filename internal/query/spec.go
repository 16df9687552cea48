package query

import (
	"maps"
	"net/url"
	"strconv"
	"strings"
)

// Order is a sort direction
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseOrder maps anything other than "desc" to Asc
func ParseOrder(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// All is the sentinel value that disables a categorical filter
const All = "all"

// Spec is the flat filter/sort/page parameter set driving one query.
// It round-trips through URL query parameters.
type Spec struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder Order
	Filters   map[string]string
	Toggles   map[string]bool
}

// Defaults describes the parameters a record schema understands and the
// values used when a request leaves them out.
type Defaults struct {
	Limit      int
	SortBy     string
	SortOrder  Order
	FilterKeys []string
	Toggles    map[string]bool
}

// Filter returns the raw value of a domain filter, or "" when unset
func (s Spec) Filter(key string) string {
	return s.Filters[key]
}

// Toggle returns the value of a show/hide toggle, or def when unset
func (s Spec) Toggle(key string, def bool) bool {
	if v, ok := s.Toggles[key]; ok {
		return v
	}
	return def
}

func (s Spec) Clone() Spec {
	c := s
	c.Filters = maps.Clone(s.Filters)
	c.Toggles = maps.Clone(s.Toggles)
	if c.Filters == nil {
		c.Filters = map[string]string{}
	}
	if c.Toggles == nil {
		c.Toggles = map[string]bool{}
	}
	return c
}

// NewSpec returns the Spec a request without parameters would produce
func NewSpec(d Defaults) Spec {
	return ParseSpec(url.Values{}, d)
}

// ParseSpec reads a spec from URL query parameters. Malformed numbers fall
// back to defaults; it never fails.
func ParseSpec(values url.Values, d Defaults) Spec {
	limit := d.Limit
	if limit < 1 {
		limit = 10
	}

	spec := Spec{
		Page:      1,
		Limit:     limit,
		Search:    strings.TrimSpace(values.Get("search")),
		SortBy:    d.SortBy,
		SortOrder: d.SortOrder,
		Filters:   make(map[string]string, len(d.FilterKeys)),
		Toggles:   make(map[string]bool, len(d.Toggles)),
	}
	if spec.SortOrder == "" {
		spec.SortOrder = Asc
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p >= 1 {
		spec.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l >= 1 {
		spec.Limit = l
	}
	if sb := strings.TrimSpace(values.Get("sortBy")); sb != "" {
		spec.SortBy = sb
	}
	if so := values.Get("sortOrder"); so != "" {
		spec.SortOrder = ParseOrder(so)
	}

	for _, key := range d.FilterKeys {
		v := strings.TrimSpace(values.Get(key))
		if v == "" {
			continue
		}
		spec.Filters[key] = v
	}

	for key, def := range d.Toggles {
		spec.Toggles[key] = def
		switch values.Get(key) {
		case "true", "1", "on":
			spec.Toggles[key] = true
		case "false", "0", "off":
			spec.Toggles[key] = false
		}
	}

	return spec
}

// Values encodes s back into URL query parameters. Empty and "all"
// filter values are omitted.
func (s Spec) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(s.Page))
	v.Set("limit", strconv.Itoa(s.Limit))
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	if s.SortBy != "" {
		v.Set("sortBy", s.SortBy)
	}
	if s.SortOrder != "" {
		v.Set("sortOrder", string(s.SortOrder))
	}
	for key, val := range s.Filters {
		if val == "" || val == All {
			continue
		}
		v.Set(key, val)
	}
	for key, on := range s.Toggles {
		v.Set(key, strconv.FormatBool(on))
	}
	return v
}

// HasActiveFilters reports whether any predicate narrows the result set
// compared to the defaults. Paging and sorting do not count.
func (s Spec) HasActiveFilters(d Defaults) bool {
	if s.Search != "" {
		return true
	}
	for _, val := range s.Filters {
		if val != "" && val != All {
			return true
		}
	}
	for key, on := range s.Toggles {
		if def, ok := d.Toggles[key]; ok && on != def {
			return true
		}
	}
	return false
}
