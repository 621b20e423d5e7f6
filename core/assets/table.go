// Package assets cleans public grid-asset tables: HIFLD infrastructure
// registries, EIA plant forms and EPA emissions datasets. Readers filter to
// operational assets in the contiguous United States.
package assets

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Table is a small column-addressed table, just enough structure for the
// filter-and-clean operations the asset readers perform.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Row is a view over a single table row.
type Row struct {
	t     *Table
	cells []string
}

// Get returns the named cell, or the empty string if the column is absent.
func (r Row) Get(col string) string {
	for i, c := range r.t.Columns {
		if c == col {
			return r.cells[i]
		}
	}
	return ""
}

// Float parses the named cell as a float64; missing or malformed cells
// return NaN semantics via the ok flag.
func (r Row) Float(col string) (float64, bool) {
	v, err := strconv.ParseFloat(r.Get(col), 64)
	return v, err == nil
}

// ReadTable parses CSV data with a header row.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := &Table{Columns: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		// Pad ragged rows so column addressing stays valid.
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		t.Rows = append(t.Rows, rec[:len(header)])
	}
	return t, nil
}

// ReadTableFile parses a CSV file with a header row.
func ReadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	return t, nil
}

// Filter returns a table containing the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Columns: t.Columns}
	for _, cells := range t.Rows {
		if keep(Row{t: t, cells: cells}) {
			out.Rows = append(out.Rows, cells)
		}
	}
	return out
}

// DropColumns removes the named columns if present.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var keepIdx []int
	var cols []string
	for i, c := range t.Columns {
		if !drop[c] {
			keepIdx = append(keepIdx, i)
			cols = append(cols, c)
		}
	}
	for ri, row := range t.Rows {
		out := make([]string, len(keepIdx))
		for j, i := range keepIdx {
			out[j] = row[i]
		}
		t.Rows[ri] = out
	}
	t.Columns = cols
}

// RenameColumn renames a column in place; unknown names are ignored.
func (t *Table) RenameColumn(from, to string) {
	for i, c := range t.Columns {
		if c == from {
			t.Columns[i] = to
			return
		}
	}
}

// Round rewrites a numeric column rounded to the given number of decimals.
// Non-numeric cells are left untouched.
func (t *Table) Round(col string, decimals int) {
	idx := -1
	for i, c := range t.Columns {
		if c == col {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	for _, row := range t.Rows {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			continue
		}
		row[idx] = strconv.FormatFloat(roundTo(v, decimals), 'f', -1, 64)
	}
}

func roundTo(v float64, decimals int) float64 {
	pow := 1.0
	for i := 0; i < decimals; i++ {
		pow *= 10
	}
	if v >= 0 {
		return float64(int64(v*pow+0.5)) / pow
	}
	return float64(int64(v*pow-0.5)) / pow
}

// Select keeps only the named columns, in the given order.
func (t *Table) Select(names ...string) error {
	idx := make([]int, len(names))
	for j, n := range names {
		idx[j] = -1
		for i, c := range t.Columns {
			if c == n {
				idx[j] = i
				break
			}
		}
		if idx[j] < 0 {
			return fmt.Errorf("column %s not found", n)
		}
	}
	for ri, row := range t.Rows {
		out := make([]string, len(idx))
		for j, i := range idx {
			out[j] = row[i]
		}
		t.Rows[ri] = out
	}
	t.Columns = append([]string(nil), names...)
	return nil
}

// Append adds the rows of other; the column sets must match exactly.
func (t *Table) Append(other *Table) error {
	if len(t.Columns) != len(other.Columns) {
		return fmt.Errorf("column count mismatch: %d vs %d", len(t.Columns), len(other.Columns))
	}
	for i, c := range t.Columns {
		if other.Columns[i] != c {
			return fmt.Errorf("column mismatch at %d: %s vs %s", i, c, other.Columns[i])
		}
	}
	t.Rows = append(t.Rows, other.Rows...)
	return nil
}

// WriteCSV writes the table with its header row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
