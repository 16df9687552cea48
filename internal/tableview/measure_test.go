package tableview

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type textRow map[string]CellValue

func (r textRow) Cell(key string) CellValue {
	if v, ok := r[key]; ok {
		return v
	}
	return Empty()
}

func rowsOf(key string, values ...string) []Row {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = textRow{key: String(v)}
	}
	return rows
}

func TestOptimalWidth_NotAutoWidthKeepsConfigured(t *testing.T) {
	col := NewColumn("sku", "SKU", 120, Bounds(100, 0))

	w := OptimalWidth(col, rowsOf("sku", "a very very very long sku value"), NewRuneMeasurer(), DefaultLocale, 50)

	assert.Equal(t, 120, w)
}

func TestOptimalWidth_NoDataClampsToDefaultMax(t *testing.T) {
	col := NewColumn("notes", "Notes", 400, Bounds(100, 0), AutoWidth())

	assert.Equal(t, 300, OptimalWidth(col, nil, NewRuneMeasurer(), DefaultLocale, 50))
	assert.Equal(t, 300, OptimalWidth(col, rowsOf("notes", "x"), nil, DefaultLocale, 50))
}

func TestOptimalWidth_UsesExemplar(t *testing.T) {
	col := NewColumn("username", "Username", 140, Bounds(100, 0), AutoWidth())

	w := OptimalWidth(col, rowsOf("username", "bob", "amy"), NewRuneMeasurer(), DefaultLocale, 50)

	// "user.name.123" is 13 cells: 13*8 + 24 + 30
	assert.Equal(t, 158, w)
}

func TestOptimalWidth_ClampsToMax(t *testing.T) {
	col := NewColumn("email", "Email", 220, Bounds(150, 300), AutoWidth(), Rendered(badge))

	w := OptimalWidth(col, rowsOf("email", "a@b.co"), NewRuneMeasurer(), DefaultLocale, 50)

	assert.Equal(t, 300, w)
}

func TestOptimalWidth_LongestValueWins(t *testing.T) {
	col := NewColumn("title", "T", 100, Bounds(50, 0), AutoWidth())
	long := "twenty characters!!!"

	w := OptimalWidth(col, rowsOf("title", "short", long), NewRuneMeasurer(), DefaultLocale, 50)

	assert.Equal(t, 20*8+24+30, w)
}

func TestOptimalWidth_OnlySamplesFirstRows(t *testing.T) {
	col := NewColumn("title", "T", 100, Bounds(50, 0), AutoWidth())
	rows := append(rowsOf("title", "ab", "ab"), rowsOf("title", "this is far too long to count")...)

	w := OptimalWidth(col, rows, NewRuneMeasurer(), DefaultLocale, 2)

	assert.Equal(t, 2*8+24+30, w)
}

func TestOptimalWidth_DecoratedBooleans(t *testing.T) {
	col := NewColumn("isActive", "S", 60, Bounds(10, 0), AutoWidth(), Rendered(badge))
	rows := []Row{textRow{"isActive": Bool(false)}, textRow{"isActive": Bool(true)}}

	w := OptimalWidth(col, rows, NewRuneMeasurer(), DefaultLocale, 50)

	// "Inactive" plus four spaces of decoration
	assert.Equal(t, 12*8+24+30, w)
}

func TestOptimalWidth_MeasurementFailureKeepsWidth(t *testing.T) {
	col := NewColumn("title", "Title", 140, Bounds(50, 0), AutoWidth())
	rows := rowsOf("title", "anything")

	failing := MeasurerFunc(func(string) (int, error) { return 0, ErrSurfaceLost })
	panicking := MeasurerFunc(func(string) (int, error) { panic(errors.New("gone")) })

	assert.Equal(t, 140, OptimalWidth(col, rows, failing, DefaultLocale, 50))
	assert.Equal(t, 140, OptimalWidth(col, rows, panicking, DefaultLocale, 50))
}

func TestCellValue_Text(t *testing.T) {
	day := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "x", String("x").Text(DefaultLocale))
	assert.Equal(t, "12.5", Number(12.5).Text(DefaultLocale))
	assert.Equal(t, "Active", Bool(true).Text(DefaultLocale))
	assert.Equal(t, "Inactive", Bool(false).Text(DefaultLocale))
	assert.Equal(t, "09/03/2024", Date(day).Text(DefaultLocale))
	assert.Equal(t, "Admin", Labeled("Admin").Text(DefaultLocale))
	assert.Equal(t, "", Empty().Text(DefaultLocale))
	assert.Equal(t, "", OptionalDate(nil).Text(DefaultLocale))
	assert.Equal(t, "2024-03-09", Date(day).Export())
}
