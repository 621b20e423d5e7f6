// Package loadcurve reads and writes hourly load curves. Curves are flat
// arrays with one value per hour, stored either as single-column delimited
// text or as a NetCDF classic variable.
package loadcurve

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadCSV reads an hourly curve from a delimited text file. The first column
// of each record is parsed as a float; a single leading non-numeric row is
// tolerated as a header.
func ReadCSV(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open load curve: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var curve []float64
	row := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read load curve %s: %w", path, err)
		}
		row++
		v, perr := strconv.ParseFloat(rec[len(rec)-1], 64)
		if perr != nil {
			if row == 1 {
				continue // header
			}
			return nil, fmt.Errorf("load curve %s row %d: %w", path, row, perr)
		}
		curve = append(curve, v)
	}
	return curve, nil
}

// WriteCSV writes an hourly curve with an hour index column.
func WriteCSV(path string, curve []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create load curve: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"hour", "load"}); err != nil {
		return err
	}
	for i, v := range curve {
		rec := []string{strconv.Itoa(i), strconv.FormatFloat(v, 'g', -1, 64)}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
