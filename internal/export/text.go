package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnSeparator = " | "

// writeText renders an aligned plain-text report. Widths are measured in
// terminal cells so wide characters line up.
func writeText(w io.Writer, d Document) error {
	headers := d.headers()
	cells := make([][]string, len(d.Rows))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for r, row := range d.Rows {
		cells[r] = make([]string, len(d.Columns))
		for i, c := range d.Columns {
			s := row.Cell(c.Key).Text(d.Locale)
			cells[r][i] = s
			widths[i] = max(widths[i], runewidth.StringWidth(s))
		}
	}

	line := func(values []string) string {
		parts := make([]string, len(values))
		for i, v := range values {
			if i == len(values)-1 {
				parts[i] = v
				continue
			}
			parts[i] = runewidth.FillRight(v, widths[i])
		}
		return strings.TrimRight(strings.Join(parts, columnSeparator), " ")
	}

	ruleWidth := 0
	for _, wd := range widths {
		ruleWidth += wd
	}
	if len(widths) > 1 {
		ruleWidth += len(columnSeparator) * (len(widths) - 1)
	}

	var b strings.Builder
	fmt.Fprintln(&b, strings.ToUpper(d.Title))
	fmt.Fprintf(&b, "Exported on: %s\n", d.GeneratedAt.Format(d.Locale.DateLayout))
	fmt.Fprintf(&b, "Total records: %d\n\n", len(d.Rows))
	fmt.Fprintln(&b, line(headers))
	fmt.Fprintln(&b, strings.Repeat("-", ruleWidth))
	for _, row := range cells {
		fmt.Fprintln(&b, line(row))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
