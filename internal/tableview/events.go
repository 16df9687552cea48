package tableview

import "github.com/BradenHooton/gridboard/internal/query"

// Intent is a user action the engine reports to its subscribers
type Intent interface {
	intent()
}

type SortRequested struct {
	Field string
	Order query.Order
}

type ResizeCommitted struct {
	Key   string
	Width int
}

type AutoFitted struct {
	Key   string
	Width int
}

type VisibilityToggled struct {
	Key     string
	Visible bool
}

type StickyChanged struct {
	Key  string
	Side Sticky
}

func (SortRequested) intent()     {}
func (ResizeCommitted) intent()   {}
func (AutoFitted) intent()        {}
func (VisibilityToggled) intent() {}
func (StickyChanged) intent()     {}

// SortState is the single active sort key
type SortState struct {
	Field string      `json:"field"`
	Order query.Order `json:"order"`
}

// ToggleSort flips the direction when field is already active and starts
// ascending on a new field.
func ToggleSort(current SortState, field string) SortState {
	if current.Field == field {
		if current.Order == query.Asc {
			return SortState{Field: field, Order: query.Desc}
		}
		return SortState{Field: field, Order: query.Asc}
	}
	return SortState{Field: field, Order: query.Asc}
}
