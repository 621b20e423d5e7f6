package assets

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/cheggaaa/pb.v1"

	"github.com/evgrid/evdemand/core/model"
)

// EIAForm860 reads an EIA Form 860 CSV file and keeps plants located in
// contiguous states.
func EIAForm860(path string) (*Table, error) {
	t, err := ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	return t.Filter(func(r Row) bool {
		_, ok := ContiguousStates[r.Get("State")]
		return ok
	}), nil
}

// Crosswalk reads the EIA-to-EPA plant ID crosswalk and keeps usable,
// non-retired matches.
func Crosswalk(path string) (*Table, error) {
	t, err := ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	excluded := map[string]bool{
		"CAMD Unmatched":      true,
		"Manual CAMD Excluded": true,
	}
	return t.Filter(func(r Row) bool {
		return !excluded[r.Get("MATCH_TYPE_GEN")] && r.Get("CAMD_STATUS") != "RET"
	}), nil
}

// EPANeeds reads an EPA NEEDS dataset CSV file and keeps plants located in
// contiguous states. NEEDS spells out full state names.
func EPANeeds(path string) (*Table, error) {
	t, err := ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(ContiguousStates))
	for _, n := range ContiguousStates {
		names[n] = true
	}
	return t.Filter(func(r Row) bool {
		return names[r.Get("State Name")]
	}), nil
}

// AirMarketsReadings reads the EPA air-markets (AMPD) dataset: one zipped CSV
// per state and month, named like "2019al01.zip" under dir. Only the columns
// needed for heat rate estimation are kept. A progress bar tracks the file
// collection since a full year spans nearly 600 archives.
func AirMarketsReadings(dir string, years []int) (*Table, error) {
	states := make([]string, 0, len(ContiguousStates))
	for abbr := range ContiguousStates {
		states = append(states, abbr)
	}
	sort.Strings(states)
	sort.Ints(years)

	bar := pb.StartNew(len(years) * len(states) * 12)
	defer bar.Finish()

	var joined *Table
	for _, year := range years {
		for _, state := range states {
			for month := 1; month <= 12; month++ {
				name := fmt.Sprintf("%d%s%02d.zip", year, strings.ToLower(state), month)
				t, err := readZippedCSV(filepath.Join(dir, name))
				if err != nil {
					return nil, err
				}
				if err := t.Select(heatRateColumns...); err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}
				if joined == nil {
					joined = t
				} else if err := joined.Append(t); err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}
				bar.Increment()
			}
		}
	}
	return joined, nil
}

// readZippedCSV reads the first CSV member of a zip archive.
func readZippedCSV(path string) (*Table, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrDataUnavailable("air-markets", filepath.Base(path))
		}
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer zr.Close()

	for _, zf := range zr.File {
		if !strings.HasSuffix(strings.ToLower(zf.Name), ".csv") {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in %s: %w", zf.Name, path, err)
		}
		t, err := ReadTable(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s in %s: %w", zf.Name, path, err)
		}
		return t, nil
	}
	return nil, model.ErrDataUnavailable("air-markets", filepath.Base(path)+" (no csv member)")
}
