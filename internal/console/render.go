// Package console is the interactive front end: it reads commands, hands
// them to the engine and prints the returned envelopes.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"

	"rotterDB/internal/engine"
	"rotterDB/internal/sql"
)

// Output formats accepted by Render.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

const (
	ruleWidth = 70
	maxCell   = 30
)

// Render writes res to w in the given format. Unknown formats render as
// a table.
func Render(w io.Writer, res engine.Result, format string) error {
	if strings.EqualFold(format, FormatJSON) {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	renderTable(w, res)
	return nil
}

func renderTable(w io.Writer, res engine.Result) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, strings.Repeat("=", ruleWidth))

	if res.OK() {
		_, _ = fmt.Fprintf(w, "SUCCESS: %s\n", res.Message)
	} else {
		_, _ = fmt.Fprintf(w, "ERROR: %s\n", res.Message)
	}

	recs, single := records(res.Data)
	if len(recs) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Data:")
		_, _ = fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
		if single {
			for i, k := range recs[0].keys {
				_, _ = fmt.Fprintf(w, "%s: %s\n", k, recs[0].vals[i])
			}
		} else {
			renderRecords(w, recs)
		}
	}

	_, _ = fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
	_, _ = fmt.Fprintln(w)
}

// record is one mapping of Data with its keys in display order.
type record struct {
	keys []string
	vals []string
}

func (r record) get(key string) string {
	if i := slices.Index(r.keys, key); i >= 0 {
		return r.vals[i]
	}
	return ""
}

// records flattens a Result payload. single is true when the payload is
// one mapping rather than a sequence of them.
func records(data any) (recs []record, single bool) {
	switch d := data.(type) {
	case []sql.Row:
		for _, row := range d {
			rec := record{keys: row.Columns()}
			for _, f := range row {
				rec.vals = append(rec.vals, f.Value.String())
			}
			recs = append(recs, rec)
		}
	case []engine.ColumnInfo:
		for _, c := range d {
			recs = append(recs, record{
				keys: []string{"column", "type"},
				vals: []string{c.Column, c.Type},
			})
		}
	case map[string]sql.Value:
		if len(d) == 0 {
			return nil, false
		}
		rec := record{}
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			rec.keys = append(rec.keys, k)
			rec.vals = append(rec.vals, d[k].String())
		}
		return []record{rec}, true
	}
	return recs, false
}

// renderRecords prints recs as a table whose header is the keys of the
// first record.
func renderRecords(w io.Writer, recs []record) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	cols := recs[0].keys
	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	t.AppendHeader(header)

	for _, rec := range recs {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = truncate(rec.get(c))
		}
		t.AppendRow(row)
	}

	t.Render()
}

// truncate shortens s to maxCell runes, ending in "...".
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxCell {
		return s
	}
	r := []rune(s)
	return string(r[:maxCell-3]) + "..."
}
