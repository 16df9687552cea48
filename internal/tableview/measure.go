package tableview

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
)

// ErrSurfaceLost is returned by a Measurer whose backing surface went away
var ErrSurfaceLost = errors.New("measuring surface unavailable")

// Measurer reports the rendered pixel width of a cell's text, including
// cell padding.
type Measurer interface {
	Measure(text string) (int, error)
}

// RuneMeasurer approximates a 14px sans-serif table cell: each terminal
// column of text counts CharWidth pixels and Padding is added once.
type RuneMeasurer struct {
	CharWidth int
	Padding   int
}

func NewRuneMeasurer() RuneMeasurer {
	return RuneMeasurer{CharWidth: 8, Padding: 24}
}

func (m RuneMeasurer) Measure(text string) (int, error) {
	return runewidth.StringWidth(text)*m.CharWidth + m.Padding, nil
}

// MeasurerFunc adapts a function to Measurer
type MeasurerFunc func(text string) (int, error)

func (f MeasurerFunc) Measure(text string) (int, error) {
	return f(text)
}

const (
	DefaultSampleSize = 50

	widthPadding      = 30
	decorationPadding = "    "
	emptyDataMax      = 300
	measuredMax       = 500
)

// exemplars are long values common enough in these columns that the first
// render should already fit them
var exemplars = map[string]string{
	"email":    "example.very.long.email@domain.com",
	"fullName": "Nguyễn Văn Thành Công",
	"username": "user.name.123",
}

// OptimalWidth computes the content-fitting width of an auto-width column
// from its label and a sample of rows. It never fails: any measurement
// error leaves the configured width in place.
func OptimalWidth(col Column, rows []Row, m Measurer, loc Locale, sampleSize int) int {
	if !col.AutoWidth {
		return col.Width
	}
	if m == nil || len(rows) == 0 {
		return clamp(col.Width, col.MinWidth, orDefault(col.MaxWidth, emptyDataMax))
	}
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	widest, err := measureColumn(col, rows[:min(sampleSize, len(rows))], m, loc)
	if err != nil {
		return col.Width
	}

	return clamp(widest+widthPadding, col.MinWidth, orDefault(col.MaxWidth, measuredMax))
}

func measureColumn(col Column, sample []Row, m Measurer, loc Locale) (widest int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("measure %s: %v", col.Key, r)
		}
	}()

	measure := func(text string) error {
		w, err := m.Measure(text)
		if err != nil {
			return err
		}
		widest = max(widest, w)
		return nil
	}

	if err := measure(col.Label); err != nil {
		return 0, err
	}

	for _, row := range sample {
		text := row.Cell(col.Key).Text(loc)
		if col.Render != nil {
			text += decorationPadding
		}
		if err := measure(text); err != nil {
			return 0, err
		}
	}

	if ex, ok := exemplars[col.Key]; ok {
		if err := measure(ex); err != nil {
			return 0, err
		}
	}

	return widest, nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
