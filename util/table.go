package util

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
)

// Table is a titled group of data sets that share row and column
// headers. Each data set is rendered as its own HTML table. Notes, if
// set, adds a trailing text column with one entry per row.
type Table struct {
	Title                  string
	ColHeaders, RowHeaders []string
	Data                   map[string][][]float64
	Notes                  []string
}

func (t *Table) validate() error {
	if t == nil {
		return errors.New("report: nil table")
	}
	rows, cols := len(t.RowHeaders), len(t.ColHeaders)
	for name, set := range t.Data {
		if len(set) != rows {
			return fmt.Errorf("report: %s/%s: %d rows for %d row headers", t.Title, name, len(set), rows)
		}
		for i, row := range set {
			if len(row) != cols {
				return fmt.Errorf("report: %s/%s: row %d has %d cells for %d column headers", t.Title, name, i, len(row), cols)
			}
		}
	}
	if t.Notes != nil && len(t.Notes) != rows {
		return fmt.Errorf("report: %s: %d notes for %d rows", t.Title, len(t.Notes), rows)
	}
	return nil
}

// WriteTablesFile writes tables as an HTML document to filePath.
func WriteTablesFile(tables []Table, filePath string) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteTables(tables, file)
}

// WriteTables writes tables as an HTML document to output. Nothing is
// written if any table is malformed.
func WriteTables(tables []Table, output io.Writer) error {
	for i := range tables {
		if err := tables[i].validate(); err != nil {
			return err
		}
	}
	if err := document.Execute(output, tables); err != nil {
		return fmt.Errorf("report: executing template: %w", err)
	}
	return nil
}

var document = template.Must(template.New("document").Funcs(template.FuncMap{
	"odd":  func(i int) bool { return i%2 == 1 },
	"cell": func(x float64) string { return fmt.Sprintf("%.6g", x) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{if .}}{{(index . 0).Title}}{{end}}</title>
<style>
	body { font-family: sans-serif; margin: 2em; }
	table.results { border-collapse: collapse; margin-bottom: 1.5em; }
	table.results caption { text-align: left; font-weight: bold; padding-bottom: 0.3em; }
	table.results th, table.results td { border: 1px solid #999; padding: 2px 8px; }
	table.results th { background: #e8e8e8; text-align: left; }
	table.results td { text-align: right; font-family: monospace; }
	table.results td.note { text-align: left; font-family: sans-serif; color: #666; }
	table.results tr.alt td { background: #f6f6f6; }
</style>
</head>
<body>
{{- range $table := .}}
<section>
	<h2>{{$table.Title}}</h2>
	{{- range $set, $rows := $table.Data}}
	<table class="results">
		<caption>{{$table.Title}} - {{$set}}</caption>
		<tr><th></th>{{range $table.ColHeaders}}<th>{{.}}</th>{{end}}{{if $table.Notes}}<th>note</th>{{end}}</tr>
		{{- range $i, $row := $rows}}
		<tr{{if odd $i}} class="alt"{{end}}><th>{{index $table.RowHeaders $i}}</th>{{range $row}}<td>{{cell .}}</td>{{end}}{{if $table.Notes}}<td class="note">{{index $table.Notes $i}}</td>{{end}}</tr>
		{{- end}}
	</table>
	{{- end}}
</section>
{{- end}}
</body>
</html>
`))
