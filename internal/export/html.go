package export

import (
	"html/template"
	"io"

	"github.com/Masterminds/sprig/v3"
)

var printTemplate = template.Must(template.New("print").Funcs(sprig.FuncMap()).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f5f5f5; font-weight: bold; }
tr:nth-child(even) { background-color: #f9f9f9; }
.header { margin-bottom: 20px; }
.header h1 { margin: 0; color: #333; }
.header p { margin: 5px 0 0 0; color: #666; }
</style>
</head>
<body>
<div class="header">
<h1>{{ .Title | default "Export" }}</h1>
<p>Exported on {{ .Generated }}</p>
<p>Total records: {{ len .Rows }}</p>
</div>
<table>
<thead>
<tr>{{ range .Headers }}<th>{{ . }}</th>{{ end }}</tr>
</thead>
<tbody>
{{- range .Rows }}
<tr>{{ range . }}<td>{{ . | trim }}</td>{{ end }}</tr>
{{- end }}
</tbody>
</table>
</body>
</html>
`))

type printView struct {
	Title     string
	Generated string
	Headers   []string
	Rows      [][]string
}

// writeHTML renders the print view. Cell text is escaped by html/template.
func writeHTML(w io.Writer, d Document) error {
	view := printView{
		Title:     d.Title,
		Generated: d.GeneratedAt.Format(d.Locale.DateLayout),
		Headers:   d.headers(),
		Rows:      make([][]string, len(d.Rows)),
	}
	for r, row := range d.Rows {
		view.Rows[r] = make([]string, len(d.Columns))
		for i, c := range d.Columns {
			view.Rows[r][i] = row.Cell(c.Key).Text(d.Locale)
		}
	}
	return printTemplate.Execute(w, view)
}
