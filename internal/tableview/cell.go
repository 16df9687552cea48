package tableview

import (
	"strconv"
	"time"
)

// CellKind tags the shape of a CellValue
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellBool
	CellDate
	CellLabeled
)

// CellValue is a raw cell value in one of a fixed set of shapes
type CellValue struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

func Empty() CellValue { return CellValue{Kind: CellEmpty} }
func String(s string) CellValue { return CellValue{Kind: CellString, Str: s} }
func Number(n float64) CellValue { return CellValue{Kind: CellNumber, Num: n} }
func Bool(b bool) CellValue { return CellValue{Kind: CellBool, Bool: b} }
func Date(t time.Time) CellValue { return CellValue{Kind: CellDate, Time: t} }
func Labeled(name string) CellValue { return CellValue{Kind: CellLabeled, Str: name} }

func OptionalDate(t *time.Time) CellValue {
	if t == nil {
		return Empty()
	}
	return Date(*t)
}

// Locale controls how booleans and dates are shown
type Locale struct {
	ActiveText   string
	InactiveText string
	DateLayout   string
}

var DefaultLocale = Locale{
	ActiveText:   "Active",
	InactiveText: "Inactive",
	DateLayout:   "02/01/2006",
}

// Text is the display string used for measuring and plain rendering
func (v CellValue) Text(loc Locale) string {
	switch v.Kind {
	case CellString, CellLabeled:
		return v.Str
	case CellNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case CellBool:
		if v.Bool {
			return loc.ActiveText
		}
		return loc.InactiveText
	case CellDate:
		return v.Time.Format(loc.DateLayout)
	default:
		return ""
	}
}

// Export is the machine-friendly form used by file exports
func (v CellValue) Export() string {
	switch v.Kind {
	case CellString, CellLabeled:
		return v.Str
	case CellNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case CellBool:
		return strconv.FormatBool(v.Bool)
	case CellDate:
		return v.Time.Format(time.DateOnly)
	default:
		return ""
	}
}

// Row exposes cell values by column key. Keys may be dotted paths.
type Row interface {
	Cell(key string) CellValue
}
