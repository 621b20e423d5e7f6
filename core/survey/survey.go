// Package survey models the vehicle travel-survey table feeding the charging
// estimators: one row per trip, with the distance driven and the dwell
// interval that follows the trip.
package survey

import (
	"github.com/evgrid/evdemand/core/model"
)

// Column names expected in survey CSV files, in canonical order.
var Columns = []string{
	"vehicle_id",
	"trip_number",
	"day_of_week",
	"if_weekend",
	"trip_miles",
	"total_vehicle_miles",
	"trip_start_hour",
	"trip_end_hour",
	"dwell_hours",
	"dwell_site",
	"vehicle_type",
}

// Survey vehicle-type codes. Codes 1-3 are light-duty vehicles, 4-6 light-duty
// trucks; depot fleet tables use 7 (medium duty) and 8 (heavy duty).
const (
	typeLDVMin = 1
	typeLDVMax = 3
	typeLDTMin = 4
	typeLDTMax = 6
	typeMDV    = 7
	typeHDV    = 8
)

// Trip is a single surveyed trip and the dwell event that follows it. Times
// are decimal hours from midnight of the surveyed day; a dwell interval may
// extend past midnight into the following day.
type Trip struct {
	VehicleID         int
	TripNumber        int
	DayOfWeek         int // 1=Sunday .. 7=Saturday
	Weekend           bool
	Miles             float64
	TotalVehicleMiles float64 // miles the vehicle travels over the whole day
	StartHour         float64
	EndHour           float64
	DwellHours        float64
	Site              model.DwellSite
	TypeCode          int
}

// Table is an in-memory survey table for one census region.
type Table struct {
	Region int
	Trips  []Trip
}

func (t *Table) filter(keep func(Trip) bool) *Table {
	out := &Table{Region: t.Region}
	for _, tr := range t.Trips {
		if keep(tr) {
			out.Trips = append(out.Trips, tr)
		}
	}
	return out
}

// FilterClass keeps only trips of the requested vehicle class.
func (t *Table) FilterClass(class model.VehicleClass) (*Table, error) {
	var keep func(Trip) bool
	switch class {
	case model.ClassLDV:
		keep = func(tr Trip) bool { return tr.TypeCode >= typeLDVMin && tr.TypeCode <= typeLDVMax }
	case model.ClassLDT:
		keep = func(tr Trip) bool { return tr.TypeCode >= typeLDTMin && tr.TypeCode <= typeLDTMax }
	case model.ClassMDV:
		keep = func(tr Trip) bool { return tr.TypeCode == typeMDV }
	case model.ClassHDV:
		keep = func(tr Trip) bool { return tr.TypeCode == typeHDV }
	default:
		return nil, model.ErrInvalidInput("veh_type", int(class), "unknown vehicle class")
	}
	return t.filter(keep), nil
}

// NormalizeWeekend recomputes the weekend flag from the day of week. The
// survey observation window runs 6AM to 5:59AM, so Friday and Sunday trips
// spill across the weekend boundary; the day of week is authoritative.
func (t *Table) NormalizeWeekend() {
	for i := range t.Trips {
		t.Trips[i].Weekend = t.Trips[i].DayOfWeek == 1 || t.Trips[i].DayOfWeek == 7
	}
}

// Miles sums trip distance over the whole table.
func (t *Table) Miles() float64 {
	var sum float64
	for _, tr := range t.Trips {
		sum += tr.Miles
	}
	return sum
}

// WeekendMiles sums trip distance over weekend trips.
func (t *Table) WeekendMiles() float64 {
	var sum float64
	for _, tr := range t.Trips {
		if tr.Weekend {
			sum += tr.Miles
		}
	}
	return sum
}

// WeekdayMiles sums trip distance over weekday trips.
func (t *Table) WeekdayMiles() float64 {
	var sum float64
	for _, tr := range t.Trips {
		if !tr.Weekend {
			sum += tr.Miles
		}
	}
	return sum
}

// DailyFleetMiles scales the table's annual travel to each day of the model
// year. The annual total counts the weekend sample on weekend days and the
// weekday sample otherwise; the weights slice apportions it across days.
func (t *Table) DailyFleetMiles(weights []float64, weekends []bool) ([]float64, error) {
	if len(weights) != len(weekends) {
		return nil, model.ErrDimensionMismatch("daily weights", len(weekends), len(weights))
	}
	weekendMiles := t.WeekendMiles()
	weekdayMiles := t.WeekdayMiles()
	var annual float64
	for _, we := range weekends {
		if we {
			annual += weekendMiles
		} else {
			annual += weekdayMiles
		}
	}
	daily := make([]float64, len(weights))
	for i, w := range weights {
		daily[i] = w * annual
	}
	return daily, nil
}

// RangeLimitedMiles sums trip distance over vehicles whose full daily mileage
// fits within a single charge. Vehicles driving beyond vehRange in a day
// cannot recharge overnight and are excluded from the electrified fleet.
func (t *Table) RangeLimitedMiles(vehRange float64) float64 {
	var sum float64
	for _, tr := range t.Trips {
		if tr.TotalVehicleMiles <= vehRange {
			sum += tr.Miles
		}
	}
	return sum
}
