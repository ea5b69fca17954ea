package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/robwalker-codes/granite-db/internal/granitectl"
)

// renderResult writes a query result to w as a terminal table.
func renderResult(w io.Writer, res *granitectl.QueryResult) {
	if res.Message != "" && len(res.Columns) == 0 {
		_, _ = fmt.Fprintln(w, res.Message)
		return
	}
	if len(res.Rows) == 0 && len(res.Columns) == 0 {
		_, _ = fmt.Fprintln(w, "(0 row(s))")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(res.Columns))
	for i, col := range res.Columns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, cells := range res.Rows {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d row(s))\n", len(res.Rows))
}

// renderResultJSON writes a query result to w as indented JSON.
func renderResultJSON(w io.Writer, res *granitectl.QueryResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// renderSchema writes a schema listing to w, one table block per table.
func renderSchema(w io.Writer, schema *granitectl.Schema) {
	if len(schema.Tables) == 0 {
		_, _ = fmt.Fprintln(w, "No tables defined")
		return
	}

	for i, tbl := range schema.Tables {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "Table: %s (%d row(s))\n", tbl.Name, tbl.RowCount)

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Column", "Type", "Nullable", "Key"})

		for _, col := range tbl.Columns {
			nullable := "YES"
			if col.NotNull {
				nullable = "NO"
			}
			key := ""
			if col.PrimaryKey {
				key = "PRI"
			}
			t.AppendRow(table.Row{col.Name, col.Type, nullable, key})
		}
		t.Render()

		if len(tbl.Indexes) > 0 {
			_, _ = fmt.Fprintln(w, "Indexes:")
			for _, idx := range tbl.Indexes {
				unique := ""
				if idx.Unique {
					unique = " UNIQUE"
				}
				_, _ = fmt.Fprintf(w, "  %s (%s)%s\n", idx.Name, strings.Join(idx.Columns, ", "), unique)
			}
		}
		if len(tbl.ForeignKeys) > 0 {
			_, _ = fmt.Fprintln(w, "Foreign Keys:")
			for _, fk := range tbl.ForeignKeys {
				_, _ = fmt.Fprintf(w, "  %s (%s) -> %s (%s)\n",
					fk.Name, strings.Join(fk.Columns, ", "), fk.ToTable, strings.Join(fk.ToColumns, ", "))
			}
		}
	}
}

// renderSchemaJSON writes a schema listing to w as indented JSON.
func renderSchemaJSON(w io.Writer, schema *granitectl.Schema) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(schema)
}
