package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/tableview"
)

// Format selects the output encoding of an export
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "excel"
	FormatText Format = "text"
	FormatHTML Format = "print"
)

// ParseFormat accepts the format names and their file extensions
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "excel", "xls", "tsv":
		return FormatTSV, nil
	case "text", "txt", "pdf":
		return FormatText, nil
	case "print", "html":
		return FormatHTML, nil
	default:
		return "", models.Errorf(models.ErrBadRequest, fmt.Sprintf("Unsupported export format %q", s))
	}
}

// ContentType is the MIME type served for f
func (f Format) ContentType() string {
	switch f {
	case FormatTSV:
		return "application/vnd.ms-excel; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Extension is the file extension used in Content-Disposition
func (f Format) Extension() string {
	switch f {
	case FormatTSV:
		return "xls"
	case FormatText:
		return "txt"
	case FormatHTML:
		return "html"
	default:
		return "csv"
	}
}

// Column is one exported field. Key may be a dotted path such as
// "roles.name".
type Column struct {
	Key    string
	Header string
}

// Document is everything an export writer needs
type Document struct {
	Title       string
	Columns     []Column
	Rows        []tableview.Row
	GeneratedAt time.Time
	Locale      tableview.Locale
}

// Filename is the download name for d in format f
func (d Document) Filename(f Format) string {
	name := strings.ToLower(strings.Join(strings.Fields(d.Title), "-"))
	if name == "" {
		name = "export"
	}
	return fmt.Sprintf("%s-%s.%s", name, d.GeneratedAt.Format("2006-01-02"), f.Extension())
}

func (d Document) headers() []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Header
	}
	return out
}

// Write renders d to w in format f
func Write(w io.Writer, f Format, d Document) error {
	if d.Locale == (tableview.Locale{}) {
		d.Locale = tableview.DefaultLocale
	}
	switch f {
	case FormatCSV:
		return writeCSV(w, d)
	case FormatTSV:
		return writeTSV(w, d)
	case FormatText:
		return writeText(w, d)
	case FormatHTML:
		return writeHTML(w, d)
	default:
		return models.Errorf(models.ErrBadRequest, fmt.Sprintf("Unsupported export format %q", f))
	}
}

func writeCSV(w io.Writer, d Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.headers()); err != nil {
		return err
	}
	record := make([]string, len(d.Columns))
	for _, row := range d.Rows {
		for i, c := range d.Columns {
			record[i] = row.Cell(c.Key).Export()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var tsvEscaper = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func writeTSV(w io.Writer, d Document) error {
	var b strings.Builder
	b.WriteString(strings.Join(d.headers(), "\t"))
	for _, row := range d.Rows {
		b.WriteByte('\n')
		for i, c := range d.Columns {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(tsvEscaper.Replace(row.Cell(c.Key).Export()))
		}
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// Available lists the export columns of a table
func Available(table string) ([]Column, bool) {
	switch strings.TrimSuffix(table, "-management-settings") {
	case "users":
		return UserColumns(), true
	case "products":
		return ProductColumns(), true
	default:
		return nil, false
	}
}

// Select picks keys, in order, from available. An empty keys list keeps
// every available column.
func Select(available []Column, keys []string) ([]Column, error) {
	if len(keys) == 0 {
		return slices.Clone(available), nil
	}
	out := make([]Column, 0, len(keys))
	for _, key := range keys {
		i := slices.IndexFunc(available, func(c Column) bool { return c.Key == key })
		if i < 0 {
			return nil, models.Errorf(models.ErrBadRequest, fmt.Sprintf("Unknown export column %q", key))
		}
		out = append(out, available[i])
	}
	return out, nil
}

func UserColumns() []Column {
	return []Column{
		{Key: "id", Header: "ID"},
		{Key: "fullName", Header: "Full name"},
		{Key: "username", Header: "Username"},
		{Key: "email", Header: "Email"},
		{Key: "roles.name", Header: "Role"},
		{Key: "isActive", Header: "Active"},
		{Key: "createdAt", Header: "Created"},
		{Key: "lastLoginAt", Header: "Last login"},
	}
}

func ProductColumns() []Column {
	return []Column{
		{Key: "id", Header: "ID"},
		{Key: "sku", Header: "SKU"},
		{Key: "name", Header: "Product name"},
		{Key: "category.name", Header: "Category"},
		{Key: "price", Header: "Price"},
		{Key: "stock", Header: "Stock"},
		{Key: "status", Header: "Status"},
		{Key: "isActive", Header: "Active"},
		{Key: "featured", Header: "Featured"},
		{Key: "createdAt", Header: "Created"},
	}
}
