package tableview

import (
	"sync"
	"testing"
	"time"

	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualFrames queues frame callbacks until flush is called
type manualFrames struct {
	mu    sync.Mutex
	queue []func()
}

func (f *manualFrames) Request(fn func()) {
	f.mu.Lock()
	f.queue = append(f.queue, fn)
	f.mu.Unlock()
}

func (f *manualFrames) flush() {
	f.mu.Lock()
	q := f.queue
	f.queue = nil
	f.mu.Unlock()
	for _, fn := range q {
		fn()
	}
}

type countingSurface struct {
	begun    int
	released int
}

func (s *countingSurface) BeginDrag() func() {
	s.begun++
	return func() { s.released++ }
}

func testSchema() []Column {
	return []Column{
		NewColumn("id", "ID", 60, Bounds(50, 80), Fixed(), Pinned(StickyLeft)),
		NewColumn("title", "Title", 150, Bounds(100, 300), AutoWidth()),
		NewColumn("notes", "Notes", 120, Bounds(80, 0)),
	}
}

func newTestEngine(frames FrameScheduler, surface Surface) *Engine {
	return New(Config{
		Columns:  testSchema(),
		Measurer: NewRuneMeasurer(),
		Frames:   frames,
		Surface:  surface,
	})
}

func widthOf(e *Engine, key string) int {
	for _, c := range e.Columns() {
		if c.Key == key {
			return c.Width
		}
	}
	return -1
}

func assertWidthInvariant(t *testing.T, e *Engine) {
	t.Helper()
	for _, c := range e.Columns() {
		assert.GreaterOrEqual(t, c.Width, c.MinWidth, c.Key)
		if c.MaxWidth > 0 {
			assert.LessOrEqual(t, c.Width, c.MaxWidth, c.Key)
		}
	}
}

func TestEngine_MountMeasuresAutoWidthColumns(t *testing.T) {
	e := newTestEngine(nil, nil)

	e.Mount(rowsOf("title", "ten chars!"))

	// max("Title", "ten chars!") = 10*8 + 24, plus padding
	assert.Equal(t, 10*8+24+30, widthOf(e, "title"))
	assert.Equal(t, 120, widthOf(e, "notes"))
}

func TestEngine_ResizeRespectsBounds(t *testing.T) {
	e := newTestEngine(nil, nil)
	e.Mount(nil)

	deltas := []int{-500, 40, 9000, -30, 17, -10000}
	for _, dx := range deltas {
		require.True(t, e.BeginResize(1, 1000))
		e.UpdateResize(1000 + dx)
		assertWidthInvariant(t, e)
		e.EndResize()
		assertWidthInvariant(t, e)
	}
}

func TestEngine_ResizeAppliesDelta(t *testing.T) {
	e := newTestEngine(nil, nil)
	e.Mount(nil)

	require.True(t, e.BeginResize(2, 200))
	assert.Equal(t, ModeResizing, e.Mode())

	e.UpdateResize(237)
	e.EndResize()

	assert.Equal(t, 157, widthOf(e, "notes"))
	assert.Equal(t, ModeIdle, e.Mode())
	assert.True(t, e.Columns()[2].ManuallyResized)
}

func TestEngine_ReplayWidths(t *testing.T) {
	e := newTestEngine(nil, nil)
	e.Mount(nil)

	e.ReplayWidths(map[string]int{"notes": 200, "id": 70, "title": 9999, "missing": 10})

	cols := e.Columns()
	assert.Equal(t, 200, widthOf(e, "notes"))
	assert.Equal(t, 300, widthOf(e, "title"))
	assert.Equal(t, 60, widthOf(e, "id"))
	assert.False(t, cols[0].ManuallyResized)
	assert.True(t, cols[1].ManuallyResized)
	assert.Equal(t, ModeIdle, e.Mode())
}

func TestEngine_ResizeRejectsFixedAndOutOfRange(t *testing.T) {
	e := newTestEngine(nil, nil)
	e.Mount(nil)

	assert.False(t, e.BeginResize(0, 0))
	assert.False(t, e.BeginResize(-1, 0))
	assert.False(t, e.BeginResize(3, 0))
	assert.Equal(t, ModeIdle, e.Mode())
}

func TestEngine_SecondBeginIsIgnoredWhileResizing(t *testing.T) {
	surface := &countingSurface{}
	e := newTestEngine(nil, surface)
	e.Mount(nil)

	require.True(t, e.BeginResize(1, 0))
	assert.False(t, e.BeginResize(2, 0))
	assert.Equal(t, 1, surface.begun)
}

func TestEngine_UpdatesAreCoalescedPerFrame(t *testing.T) {
	frames := &manualFrames{}
	e := newTestEngine(frames, nil)
	e.Mount(nil)

	require.True(t, e.BeginResize(2, 0))
	e.UpdateResize(10)
	e.UpdateResize(20)
	e.UpdateResize(30)

	assert.Len(t, frames.queue, 1)
	assert.Equal(t, 120, widthOf(e, "notes"))

	frames.flush()
	assert.Equal(t, 150, widthOf(e, "notes"))

	e.UpdateResize(45)
	e.EndResize()
	assert.Equal(t, 165, widthOf(e, "notes"))

	frames.flush()
	assert.Equal(t, 165, widthOf(e, "notes"))
}

func TestEngine_ReleasesSurfaceOnEndAndCancel(t *testing.T) {
	surface := &countingSurface{}
	e := newTestEngine(nil, surface)
	e.Mount(nil)

	require.True(t, e.BeginResize(2, 0))
	e.EndResize()
	e.EndResize()
	assert.Equal(t, 1, surface.released)

	require.True(t, e.BeginResize(2, 0))
	e.UpdateResize(60)
	e.CancelResize()
	assert.Equal(t, 2, surface.released)
	assert.Equal(t, 120, widthOf(e, "notes"))
	assert.Equal(t, ModeIdle, e.Mode())
}

func TestEngine_ManualWidthSurvivesRecalculation(t *testing.T) {
	e := newTestEngine(nil, nil)
	e.Mount(rowsOf("title", "short"))

	require.True(t, e.BeginResize(1, 0))
	e.UpdateResize(20)
	e.EndResize()
	manual := widthOf(e, "title")
	assert.Equal(t, 120, manual)

	e.SetRows(rowsOf("title", "a much much longer title than before"))
	e.ViewportResized()

	assert.Equal(t, manual, widthOf(e, "title"))
	assert.True(t, e.Columns()[1].ManuallyResized)
}

func TestEngine_AutoFitResetsManualFlag(t *testing.T) {
	e := newTestEngine(nil, nil)
	e.Mount(rowsOf("title", "ten chars!"))

	require.True(t, e.BeginResize(1, 0))
	e.UpdateResize(80)
	e.EndResize()

	var fitted []Intent
	e.Subscribe(func(in Intent) { fitted = append(fitted, in) })

	assert.True(t, e.AutoFit(1))
	assert.Equal(t, 10*8+24+30, widthOf(e, "title"))
	assert.False(t, e.Columns()[1].ManuallyResized)
	assert.Equal(t, []Intent{AutoFitted{Key: "title", Width: 134}}, fitted)

	assert.False(t, e.AutoFit(0))
}

func TestEngine_RecalculateIsNoOpWhileResizing(t *testing.T) {
	e := newTestEngine(nil, nil)
	e.Mount(nil)

	require.True(t, e.BeginResize(2, 0))
	e.SetVisibility("title", false)
	assert.Len(t, e.Columns(), 3)

	e.EndResize()
	e.ViewportResized()
	assert.Len(t, e.Columns(), 2)
}

func TestEngine_OverridesDuringDragApplyWhenItEnds(t *testing.T) {
	t.Run("end", func(t *testing.T) {
		e := newTestEngine(nil, nil)
		e.Mount(nil)

		require.True(t, e.BeginResize(2, 0))
		e.UpdateResize(40)
		e.SetVisibility("title", false)
		e.EndResize()

		cols := e.Columns()
		require.Len(t, cols, 2)
		assert.Equal(t, "notes", cols[1].Key)
		assert.Equal(t, 160, cols[1].Width)
		assert.True(t, cols[1].ManuallyResized)
	})

	t.Run("cancel", func(t *testing.T) {
		e := newTestEngine(nil, nil)
		e.Mount(nil)

		require.True(t, e.BeginResize(2, 0))
		e.UpdateResize(40)
		e.SetSticky("notes", StickyRight)
		e.CancelResize()

		layout := e.Layout()
		require.Len(t, layout, 3)
		notes := layout[2]
		assert.Equal(t, "notes", notes.Key)
		assert.Equal(t, StickyRight, notes.Sticky)
		assert.Equal(t, 120, notes.Width)
		assert.False(t, notes.Manual)
	})
}

func TestEngine_IntentsAndUnsubscribe(t *testing.T) {
	e := newTestEngine(nil, nil)
	e.Mount(nil)

	var got []Intent
	unsubscribe := e.Subscribe(func(in Intent) { got = append(got, in) })

	_, ok := e.RequestSort("title")
	assert.True(t, ok)
	e.RequestSort("title")
	e.SetVisibility("notes", false)
	e.SetSticky("title", StickyRight)

	require.True(t, e.BeginResize(1, 0))
	e.UpdateResize(5)
	e.EndResize()

	unsubscribe()
	e.RequestSort("title")

	require.Len(t, got, 5)
	assert.Equal(t, SortRequested{Field: "title", Order: query.Asc}, got[0])
	assert.Equal(t, SortRequested{Field: "title", Order: query.Desc}, got[1])
	assert.Equal(t, VisibilityToggled{Key: "notes", Visible: false}, got[2])
	assert.Equal(t, StickyChanged{Key: "title", Side: StickyRight}, got[3])
	assert.IsType(t, ResizeCommitted{}, got[4])
}

func TestEngine_RequestSortIgnoresUnsortable(t *testing.T) {
	schema := []Column{NewColumn("x", "X", 100, Unsortable())}
	e := New(Config{Columns: schema})

	_, ok := e.RequestSort("x")
	assert.False(t, ok)
	_, ok = e.RequestSort("missing")
	assert.False(t, ok)
	assert.Equal(t, SortState{}, e.Sort())
}

func TestEngine_ReshownColumnIsMeasuredAgain(t *testing.T) {
	e := newTestEngine(nil, nil)
	e.Mount(rowsOf("title", "ten chars!"))

	e.SetVisibility("title", false)
	e.SetRows(rowsOf("title", "fifteen chars!!"))
	e.SetVisibility("title", true)

	assert.Equal(t, 15*8+24+30, widthOf(e, "title"))
}

func TestEngine_ResetVisibility(t *testing.T) {
	e := newTestEngine(nil, nil)
	e.Mount(nil)
	e.SetVisibility("notes", false)

	var got []Intent
	e.Subscribe(func(in Intent) { got = append(got, in) })
	e.ResetVisibility()

	assert.Len(t, e.Columns(), 3)
	assert.Equal(t, []Intent{VisibilityToggled{Key: "notes", Visible: true}}, got)
	vis, _ := e.Overrides()
	assert.Empty(t, vis)
}

func TestEngine_Layout(t *testing.T) {
	e := New(Config{
		Columns: []Column{
			NewColumn("A", "A", 80, Pinned(StickyLeft)),
			NewColumn("B", "B", 120, Pinned(StickyLeft)),
			NewColumn("C", "C", 200),
			NewColumn("D", "D", 60, Pinned(StickyRight)),
			NewColumn("E", "E", 90, Pinned(StickyRight)),
		},
	})
	e.Mount(nil)
	e.RequestSort("C")

	layout := e.Layout()

	require.Len(t, layout, 5)
	require.NotNil(t, layout[1].Offset)
	assert.Equal(t, 80, *layout[1].Offset)
	assert.Nil(t, layout[2].Offset)
	assert.Equal(t, query.Asc, layout[2].Sort)
	assert.Equal(t, 90, *layout[3].Offset)
	assert.Equal(t, 0, *layout[4].Offset)
}

func TestTickerFrames_RunsLatestRequest(t *testing.T) {
	frames := NewTickerFrames(50 * time.Millisecond)
	defer frames.Stop()

	done := make(chan int, 1)
	frames.Request(func() { done <- 1 })
	frames.Request(func() { done <- 2 })

	assert.Equal(t, 2, <-done)
}
