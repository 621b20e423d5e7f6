// Package weighting derives per-day scale factors for a model year from
// vehicle-miles-travelled distributions. The factors spread a year's travel
// across calendar days so that trip statistics sampled on representative days
// can be scaled to every day of the simulation horizon.
package weighting

import (
	"time"

	"github.com/evgrid/evdemand/core/model"
)

// AreaType selects the travel distribution to use.
type AreaType string

const (
	AreaUrban AreaType = "urban"
	AreaRural AreaType = "rural"
)

// Years outside this range are rejected rather than extrapolated.
const (
	minYear = 1990
	maxYear = 2100
)

// Monthly share of annual VMT, January through December. Bundled defaults
// derived from the MOVES monthly distribution; the leap-year column accounts
// for the extra February day.
var monthlyShare = map[string][12]float64{
	"regular_year": {
		0.0744, 0.0722, 0.0843, 0.0834, 0.0879, 0.0879,
		0.0886, 0.0887, 0.0837, 0.0859, 0.0802, 0.0828,
	},
	"leap_year": {
		0.0743, 0.0747, 0.0842, 0.0833, 0.0878, 0.0878,
		0.0885, 0.0886, 0.0836, 0.0858, 0.0801, 0.0827,
	},
}

// Share of a week's VMT occurring across all weekdays respectively weekend
// days, per area type.
var weeklyShare = map[AreaType]struct{ weekday, weekend float64 }{
	AreaUrban: {weekday: 0.748, weekend: 0.252},
	AreaRural: {weekday: 0.72, weekend: 0.28},
}

// IsLeap reports whether the year has 366 days.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Days returns the number of days in the model year.
func Days(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// Hours returns the length of the hourly simulation horizon for the year.
func Hours(year int) int {
	return Days(year) * 24
}

// Weekends returns, for each day of the model year, whether it falls on a
// Saturday or Sunday.
func Weekends(year int) []bool {
	days := Days(year)
	out := make([]bool, days)
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		wd := d.Weekday()
		out[i] = wd == time.Saturday || wd == time.Sunday
		d = d.AddDate(0, 0, 1)
	}
	return out
}

// Daily generates daily weighting factors for the model year. The returned
// slice has one entry per day and sums to 1: each value is the estimated
// fraction of the year's vehicle miles travelled occurring on that day.
func Daily(year int, area AreaType) ([]float64, error) {
	if year < minYear || year > maxYear {
		return nil, model.ErrInvalidInput("model_year", year, "outside supported range")
	}
	ws, ok := weeklyShare[area]
	if !ok {
		return nil, model.ErrInvalidInput("area_type", string(area), `must be "urban" or "rural"`)
	}

	yearType := "regular_year"
	if IsLeap(year) {
		yearType = "leap_year"
	}
	months := monthlyShare[yearType]
	var monthTotal float64
	for _, v := range months {
		monthTotal += v
	}

	days := Days(year)
	values := make([]float64, days)
	monthOf := make([]int, days)
	monthSum := make([]float64, 12)

	// Each day gets its within-week weight, normalized to a single weekday or
	// weekend day.
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			values[i] = ws.weekend / 2
		} else {
			values[i] = ws.weekday / 5
		}
		monthOf[i] = int(d.Month()) - 1
		monthSum[monthOf[i]] += values[i]
		d = d.AddDate(0, 0, 1)
	}

	// Normalize each month to sum to 1, then scale by the month's share of
	// annual travel. The monthly shares are themselves normalized to correct
	// for independent rounding in the source table.
	for i := 0; i < days; i++ {
		m := monthOf[i]
		values[i] *= months[m] / monthTotal / monthSum[m]
	}
	return values, nil
}
