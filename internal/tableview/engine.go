package tableview

import (
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/BradenHooton/gridboard/internal/query"
)

// Mode is the engine's interaction state
type Mode int

const (
	ModeIdle Mode = iota
	ModeResizing
)

func (m Mode) String() string {
	if m == ModeResizing {
		return "resizing"
	}
	return "idle"
}

// Config configures an Engine. Zero values fall back to headless defaults.
type Config struct {
	Columns    []Column
	Visibility map[string]bool
	Sticky     map[string]Sticky
	Sort       SortState
	Measurer   Measurer
	Locale     Locale
	Frames     FrameScheduler
	Surface    Surface
	SampleSize int
	Logger     *slog.Logger
}

type dragState struct {
	index      int
	startX     int
	startWidth int
	pending    int
	release    func()
}

// Engine holds the column state of one table: widths, visibility, pinning,
// sorting and the resize interaction. It is safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	schema     []Column
	visibility map[string]bool
	sticky     map[string]Sticky
	columns    []Column
	rows       []Row
	sort       SortState

	mode         Mode
	drag         *dragState
	framePending bool
	// stale is set when a recalculation was deferred by an active drag
	stale bool

	measurer   Measurer
	locale     Locale
	frames     FrameScheduler
	surface    Surface
	sampleSize int
	logger     *slog.Logger

	subs    map[int]func(Intent)
	nextSub int
}

func New(cfg Config) *Engine {
	e := &Engine{
		schema:     slices.Clone(cfg.Columns),
		visibility: maps.Clone(cfg.Visibility),
		sticky:     maps.Clone(cfg.Sticky),
		sort:       cfg.Sort,
		measurer:   cfg.Measurer,
		locale:     cfg.Locale,
		frames:     cfg.Frames,
		surface:    cfg.Surface,
		sampleSize: cfg.SampleSize,
		logger:     cfg.Logger,
		subs:       make(map[int]func(Intent)),
	}
	if e.visibility == nil {
		e.visibility = map[string]bool{}
	}
	if e.sticky == nil {
		e.sticky = map[string]Sticky{}
	}
	if e.locale == (Locale{}) {
		e.locale = DefaultLocale
	}
	if e.frames == nil {
		e.frames = ImmediateFrames{}
	}
	if e.surface == nil {
		e.surface = NopSurface{}
	}
	if e.sampleSize <= 0 {
		e.sampleSize = DefaultSampleSize
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Subscribe registers fn for every intent. The returned func unsubscribes.
func (e *Engine) Subscribe(fn func(Intent)) func() {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

func (e *Engine) publish(in Intent) {
	e.mu.Lock()
	handlers := make([]func(Intent), 0, len(e.subs))
	for _, id := range slices.Sorted(maps.Keys(e.subs)) {
		handlers = append(handlers, e.subs[id])
	}
	e.mu.Unlock()

	for _, fn := range handlers {
		fn(in)
	}
}

// Columns returns the visible columns in display order
func (e *Engine) Columns() []Column {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentLocked()
}

func (e *Engine) currentLocked() []Column {
	if e.columns == nil {
		return ResolveColumns(e.schema, e.visibility, e.sticky)
	}
	return slices.Clone(e.columns)
}

func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Engine) Sort() SortState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sort
}

// Overrides returns copies of the visibility and sticky override maps
func (e *Engine) Overrides() (map[string]bool, map[string]Sticky) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.visibility), maps.Clone(e.sticky)
}

// Mount measures the table for its first data set
func (e *Engine) Mount(rows []Row) {
	e.SetRows(rows)
}

// SetRows replaces the data set and recalculates auto widths
func (e *Engine) SetRows(rows []Row) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = rows
	e.recalculateLocked()
}

// ViewportResized recalculates auto widths after the viewport changed
func (e *Engine) ViewportResized() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recalculateLocked()
}

// recalculateLocked rebuilds the visible column list. Columns already
// present keep their width and manual flag; newly shown auto-width columns
// are measured. Skipped while a drag is in progress.
func (e *Engine) recalculateLocked() {
	if e.mode == ModeResizing {
		e.stale = true
		return
	}
	e.stale = false

	resolved := ResolveColumns(e.schema, e.visibility, e.sticky)
	for i, col := range resolved {
		if existing, ok := e.findLocked(col.Key); ok {
			col.Width = existing.Width
			col.ManuallyResized = existing.ManuallyResized
			col.Clamp()
		} else if col.AutoWidth {
			col.Width = OptimalWidth(col, e.rows, e.measurer, e.locale, e.sampleSize)
		}
		resolved[i] = col
	}
	e.columns = resolved
}

func (e *Engine) findLocked(key string) (Column, bool) {
	for _, col := range e.columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column{}, false
}

// BeginResize starts dragging the right edge of the column at index.
// It reports false for out of range or fixed-width columns, or when a drag
// is already active.
func (e *Engine) BeginResize(index, pointerX int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode == ModeResizing {
		return false
	}
	if e.columns == nil {
		e.columns = ResolveColumns(e.schema, e.visibility, e.sticky)
	}
	if index < 0 || index >= len(e.columns) || !e.columns[index].Resizable {
		return false
	}

	width := e.columns[index].Width
	e.drag = &dragState{
		index:      index,
		startX:     pointerX,
		startWidth: width,
		pending:    width,
		release:    releaseOnce(e.surface.BeginDrag()),
	}
	e.mode = ModeResizing
	return true
}

// UpdateResize records the pointer position. The new width is applied on
// the next frame.
func (e *Engine) UpdateResize(pointerX int) {
	e.mu.Lock()
	if e.drag == nil {
		e.mu.Unlock()
		return
	}

	col := e.columns[e.drag.index]
	width := max(e.drag.startWidth+pointerX-e.drag.startX, col.MinWidth)
	if col.MaxWidth > 0 {
		width = min(width, col.MaxWidth)
	}
	e.drag.pending = width

	schedule := !e.framePending
	e.framePending = true
	e.mu.Unlock()

	if schedule {
		e.frames.Request(e.applyFrame)
	}
}

func (e *Engine) applyFrame() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.framePending = false
	if e.drag == nil {
		return
	}
	e.columns[e.drag.index].Width = e.drag.pending
}

// EndResize commits the dragged width and marks the column as manually
// resized. No-op without an active drag.
func (e *Engine) EndResize() {
	e.mu.Lock()
	if e.drag == nil {
		e.mu.Unlock()
		return
	}

	d := e.drag
	col := &e.columns[d.index]
	col.Width = d.pending
	col.ManuallyResized = true
	committed := ResizeCommitted{Key: col.Key, Width: col.Width}

	e.drag = nil
	e.mode = ModeIdle
	if e.stale {
		e.recalculateLocked()
	}
	e.mu.Unlock()

	d.release()
	e.publish(committed)
}

// CancelResize abandons a drag and restores the starting width
func (e *Engine) CancelResize() {
	e.mu.Lock()
	if e.drag == nil {
		e.mu.Unlock()
		return
	}

	d := e.drag
	e.columns[d.index].Width = d.startWidth
	e.drag = nil
	e.mode = ModeIdle
	if e.stale {
		e.recalculateLocked()
	}
	e.mu.Unlock()

	d.release()
}

// ReplayWidths drags each keyed column to the given width, in key order.
// Hidden, unknown and fixed-width columns are skipped.
func (e *Engine) ReplayWidths(widths map[string]int) {
	for _, key := range slices.Sorted(maps.Keys(widths)) {
		cols := e.Columns()
		i := slices.IndexFunc(cols, func(c Column) bool { return c.Key == key })
		if i < 0 || !e.BeginResize(i, 0) {
			continue
		}
		e.UpdateResize(widths[key] - cols[i].Width)
		e.EndResize()
	}
}

// AutoFit sizes the column at index to its content and clears the manual
// flag. It reports false for out of range or fixed-width columns.
func (e *Engine) AutoFit(index int) bool {
	e.mu.Lock()
	if e.mode == ModeResizing || e.columns == nil || index < 0 || index >= len(e.columns) || !e.columns[index].Resizable {
		e.mu.Unlock()
		return false
	}

	col := &e.columns[index]
	col.Width = OptimalWidth(*col, e.rows, e.measurer, e.locale, e.sampleSize)
	col.ManuallyResized = false
	fitted := AutoFitted{Key: col.Key, Width: col.Width}
	e.mu.Unlock()

	e.logger.Debug("column auto-fitted", "key", fitted.Key, "width", fitted.Width)
	e.publish(fitted)
	return true
}

// RequestSort toggles sorting on a column. Non-sortable and unknown
// columns are ignored.
func (e *Engine) RequestSort(key string) (SortState, bool) {
	e.mu.Lock()
	idx := slices.IndexFunc(e.schema, func(c Column) bool { return c.Key == key })
	if idx < 0 || !e.schema[idx].Sortable {
		current := e.sort
		e.mu.Unlock()
		return current, false
	}
	e.sort = ToggleSort(e.sort, key)
	next := e.sort
	e.mu.Unlock()

	e.publish(SortRequested{Field: next.Field, Order: next.Order})
	return next, true
}

// SetVisibility shows or hides a column
func (e *Engine) SetVisibility(key string, visible bool) {
	e.mu.Lock()
	e.visibility[key] = visible
	e.recalculateLocked()
	e.mu.Unlock()

	e.publish(VisibilityToggled{Key: key, Visible: visible})
}

// SetSticky pins a column to an edge, or unpins it with StickyNone
func (e *Engine) SetSticky(key string, side Sticky) {
	e.mu.Lock()
	e.sticky[key] = side
	e.recalculateLocked()
	e.mu.Unlock()

	e.publish(StickyChanged{Key: key, Side: side})
}

// ResetVisibility drops every visibility override
func (e *Engine) ResetVisibility() {
	e.mu.Lock()
	keys := slices.Sorted(maps.Keys(e.visibility))
	clear(e.visibility)
	e.recalculateLocked()
	visible := make(map[string]bool, len(keys))
	for _, k := range keys {
		_, visible[k] = e.findLocked(k)
	}
	e.mu.Unlock()

	for _, k := range keys {
		e.publish(VisibilityToggled{Key: k, Visible: visible[k]})
	}
}

// LayoutColumn is the render instruction for one header cell
type LayoutColumn struct {
	Key       string      `json:"key"`
	Label     string      `json:"label"`
	Width     int         `json:"width"`
	Sticky    Sticky      `json:"sticky"`
	Offset    *int        `json:"offset"`
	Sort      query.Order `json:"sort,omitempty"`
	Align     Align       `json:"align"`
	Sortable  bool        `json:"sortable"`
	Resizable bool        `json:"resizable"`
	Manual    bool        `json:"manuallyResized"`
}

// Layout returns render instructions for the visible columns
func (e *Engine) Layout() []LayoutColumn {
	e.mu.Lock()
	cols := e.currentLocked()
	sort := e.sort
	e.mu.Unlock()

	offsets := StickyOffsets(cols)
	out := make([]LayoutColumn, 0, len(cols))
	for _, col := range cols {
		lc := LayoutColumn{
			Key:       col.Key,
			Label:     col.Label,
			Width:     col.Width,
			Sticky:    col.Sticky,
			Align:     col.Align,
			Sortable:  col.Sortable,
			Resizable: col.Resizable,
			Manual:    col.ManuallyResized,
		}
		if off, ok := offsets[col.Key]; ok {
			lc.Offset = &off
		}
		if col.Sortable && sort.Field == col.Key {
			lc.Sort = sort.Order
		}
		out = append(out, lc)
	}
	return out
}
