package tableview

// Sticky pins a column to one edge of the horizontal scroll area
type Sticky string

const (
	StickyNone  Sticky = "none"
	StickyLeft  Sticky = "left"
	StickyRight Sticky = "right"
)

// ParseSticky maps unknown values to StickyNone
func ParseSticky(s string) Sticky {
	switch Sticky(s) {
	case StickyLeft, StickyRight:
		return Sticky(s)
	default:
		return StickyNone
	}
}

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Column describes one table column. Width is in pixels and always lies in
// [MinWidth, MaxWidth]; MaxWidth 0 means unbounded.
type Column struct {
	Key             string `json:"key"`
	Label           string `json:"label"`
	Width           int    `json:"width"`
	MinWidth        int    `json:"minWidth"`
	MaxWidth        int    `json:"maxWidth,omitempty"`
	Sortable        bool   `json:"sortable"`
	Resizable       bool   `json:"resizable"`
	AutoWidth       bool   `json:"autoWidth"`
	Visible         bool   `json:"visible"`
	Sticky          Sticky `json:"sticky"`
	ManuallyResized bool   `json:"manuallyResized"`
	Align           Align  `json:"align"`

	// Render marks a column whose cells are decorated (badges, links).
	// Measurement pads decorated cells.
	Render func(CellValue) string `json:"-"`
}

// ColumnOption adjusts a column built by NewColumn
type ColumnOption func(*Column)

// NewColumn returns a sortable, resizable, visible, non-sticky column
func NewColumn(key, label string, width int, opts ...ColumnOption) Column {
	c := Column{
		Key:       key,
		Label:     label,
		Width:     width,
		Sortable:  true,
		Resizable: true,
		Visible:   true,
		Sticky:    StickyNone,
		Align:     AlignLeft,
	}
	for _, opt := range opts {
		opt(&c)
	}
	c.Clamp()
	return c
}

func Bounds(min, max int) ColumnOption {
	return func(c *Column) {
		c.MinWidth = min
		c.MaxWidth = max
	}
}

func Fixed() ColumnOption {
	return func(c *Column) { c.Resizable = false }
}

func Unsortable() ColumnOption {
	return func(c *Column) { c.Sortable = false }
}

func AutoWidth() ColumnOption {
	return func(c *Column) { c.AutoWidth = true }
}

func Pinned(side Sticky) ColumnOption {
	return func(c *Column) { c.Sticky = side }
}

func Aligned(a Align) ColumnOption {
	return func(c *Column) { c.Align = a }
}

func Rendered(fn func(CellValue) string) ColumnOption {
	return func(c *Column) { c.Render = fn }
}

// Clamp restores the width invariant
func (c *Column) Clamp() {
	c.Width = clamp(c.Width, c.MinWidth, c.MaxWidth)
	if c.Sticky == "" {
		c.Sticky = StickyNone
	}
}

// Display formats a cell for this column
func (c Column) Display(v CellValue, loc Locale) string {
	if c.Render != nil {
		return c.Render(v)
	}
	return v.Text(loc)
}

func clamp(w, min, max int) int {
	if max > 0 && w > max {
		w = max
	}
	if w < min {
		w = min
	}
	return w
}

// ResolveColumns applies persisted overrides to a schema and drops hidden
// columns. Overrides win over schema defaults; schema order is kept.
func ResolveColumns(schema []Column, visibility map[string]bool, sticky map[string]Sticky) []Column {
	out := make([]Column, 0, len(schema))
	for _, col := range schema {
		if v, ok := visibility[col.Key]; ok {
			col.Visible = v
		}
		if !col.Visible {
			continue
		}
		if s, ok := sticky[col.Key]; ok {
			col.Sticky = s
		}
		col.Clamp()
		out = append(out, col)
	}
	return out
}

// StickyOffsets returns the pixel offset of every sticky column from its
// pinned edge. Left columns stack left to right, right columns stack right
// to left. Non-sticky columns are absent from the map.
func StickyOffsets(columns []Column) map[string]int {
	offsets := make(map[string]int)

	left := 0
	for _, col := range columns {
		if col.Sticky == StickyLeft {
			offsets[col.Key] = left
			left += col.Width
		}
	}

	right := 0
	for i := len(columns) - 1; i >= 0; i-- {
		col := columns[i]
		if col.Sticky == StickyRight {
			offsets[col.Key] = right
			right += col.Width
		}
	}

	return offsets
}
