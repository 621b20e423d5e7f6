package survey

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/evgrid/evdemand/core/model"
)

// Load reads a survey CSV file for the given census region. The file must
// carry a header row naming at least the columns in Columns; extra columns
// are ignored.
func Load(path string, censusRegion int) (*Table, error) {
	if censusRegion < 1 || censusRegion > 9 {
		return nil, model.ErrInvalidInput("census_region", censusRegion, "must be between 1 and 9")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open survey table: %w", err)
	}
	defer f.Close()

	t, err := Read(f, censusRegion)
	if err != nil {
		return nil, fmt.Errorf("read survey table %s: %w", path, err)
	}
	return t, nil
}

// Read parses survey CSV data from r.
func Read(r io.Reader, censusRegion int) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range Columns {
		if _, ok := idx[name]; !ok {
			return nil, model.ErrInvalidInput("survey columns", name, "required column missing")
		}
	}

	table := &Table{Region: censusRegion}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++
		trip, err := parseTrip(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		table.Trips = append(table.Trips, trip)
	}
	if len(table.Trips) == 0 {
		return nil, model.ErrDataUnavailable("survey", fmt.Sprintf("census region %d", censusRegion))
	}
	return table, nil
}

func parseTrip(rec []string, idx map[string]int) (Trip, error) {
	geti := func(col string) (int, error) {
		v, err := strconv.Atoi(rec[idx[col]])
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", col, err)
		}
		return v, nil
	}
	getf := func(col string) (float64, error) {
		v, err := strconv.ParseFloat(rec[idx[col]], 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", col, err)
		}
		return v, nil
	}

	var t Trip
	var err error
	if t.VehicleID, err = geti("vehicle_id"); err != nil {
		return t, err
	}
	if t.TripNumber, err = geti("trip_number"); err != nil {
		return t, err
	}
	if t.DayOfWeek, err = geti("day_of_week"); err != nil {
		return t, err
	}
	weekend, err := geti("if_weekend")
	if err != nil {
		return t, err
	}
	t.Weekend = weekend == 1
	if t.Miles, err = getf("trip_miles"); err != nil {
		return t, err
	}
	if t.TotalVehicleMiles, err = getf("total_vehicle_miles"); err != nil {
		return t, err
	}
	if t.StartHour, err = getf("trip_start_hour"); err != nil {
		return t, err
	}
	if t.EndHour, err = getf("trip_end_hour"); err != nil {
		return t, err
	}
	if t.DwellHours, err = getf("dwell_hours"); err != nil {
		return t, err
	}
	site, err := geti("dwell_site")
	if err != nil {
		return t, err
	}
	if t.Site, err = model.ParseDwellSite(site); err != nil {
		return t, err
	}
	if t.TypeCode, err = geti("vehicle_type"); err != nil {
		return t, err
	}
	if t.Miles < 0 || t.DwellHours < 0 {
		return t, model.ErrInvalidInput("trip", t.TripNumber, "negative miles or dwell time")
	}
	return t, nil
}
