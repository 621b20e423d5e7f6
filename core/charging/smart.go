// Package charging estimates hourly EV charging load curves. The smart
// strategy shapes charging into the lowest-loaded hours of a baseline grid
// curve (greedy water-filling); the immediate strategy charges on arrival.
package charging

import (
	"gonum.org/v1/gonum/floats"

	"github.com/evgrid/evdemand/core/model"
	"github.com/evgrid/evdemand/core/survey"
	"github.com/evgrid/evdemand/core/weighting"
)

// Result is the outcome of a charging estimate.
type Result struct {
	// Curve is the additive hourly charging load, same length as the
	// baseline curve.
	Curve []float64
	// Shortfall records, per day, energy need that could not be placed
	// because eligible hours ran out of headroom. The allocation itself
	// absorbs the shortfall silently; this is informational.
	Shortfall []float64
	// Demand is the total fleet energy need over the horizon.
	Demand float64
	// Allocated is the total energy placed on the curve.
	Allocated float64
}

// request is one unit of allocation work: energy to place into a set of
// eligible hours at a bounded per-hour rate.
type request struct {
	hours []int
	need  float64
	cap   float64
}

// Smart computes the smart-charging load curve for a light-duty fleet. The
// baseline must cover the model year at hourly resolution and weights must
// hold one factor per day. The returned curve is purely additive; the
// baseline is not modified.
func Smart(cfg Config, baseline, weights []float64, table *survey.Table) (*Result, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	days := weighting.Days(cfg.ModelYear)
	horizon := days * 24
	if len(baseline) != horizon {
		return nil, model.ErrDimensionMismatch("baseline load curve", horizon, len(baseline))
	}
	if len(weights) != days {
		return nil, model.ErrDimensionMismatch("daily weighting", days, len(weights))
	}

	fleet, err := electrifiedFleet(table, cfg.Class, cfg.VehicleRange)
	if err != nil {
		return nil, err
	}

	weekendTrips, weekdayTrips := splitByDayKind(fleet.Trips)
	weekendMiles := tripMiles(weekendTrips)
	weekdayMiles := tripMiles(weekdayTrips)

	weekends := weighting.Weekends(cfg.ModelYear)
	daily, err := fleet.DailyFleetMiles(weights, weekends)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Curve:     make([]float64, horizon),
		Shortfall: make([]float64, days),
	}
	for d := 0; d < days; d++ {
		trips, sampleMiles := weekdayTrips, weekdayMiles
		if weekends[d] {
			trips, sampleMiles = weekendTrips, weekendMiles
		}
		if sampleMiles <= 0 || daily[d] <= 0 {
			continue
		}
		// Every surveyed trip stands in for scale fleet-vehicles on this day.
		scale := daily[d] / sampleMiles
		for _, req := range dayRequests(trips, d, scale, cfg.KWhPerMile, cfg.PowerKW, cfg.Location, cfg.Trip, horizon) {
			res.Demand += req.need
			placed := waterFill(baseline, res.Curve, req.hours, req.cap, req.need)
			res.Shortfall[d] += req.need - placed
		}
	}
	res.Allocated = floats.Sum(res.Curve)
	return res, nil
}

// electrifiedFleet filters the survey table to the scenario's vehicle class
// and drops vehicles whose daily mileage exceeds a single charge.
func electrifiedFleet(table *survey.Table, class model.VehicleClass, vehRange float64) (*survey.Table, error) {
	ft, err := table.FilterClass(class)
	if err != nil {
		return nil, err
	}
	ft.NormalizeWeekend()
	kept := &survey.Table{Region: ft.Region}
	for _, tr := range ft.Trips {
		if tr.TotalVehicleMiles <= vehRange {
			kept.Trips = append(kept.Trips, tr)
		}
	}
	if len(kept.Trips) == 0 {
		return nil, model.ErrDataUnavailable("survey", class.String())
	}
	return kept, nil
}

func splitByDayKind(trips []survey.Trip) (weekend, weekday []survey.Trip) {
	for _, tr := range trips {
		if tr.Weekend {
			weekend = append(weekend, tr)
		} else {
			weekday = append(weekday, tr)
		}
	}
	return weekend, weekday
}

func tripMiles(trips []survey.Trip) float64 {
	var sum float64
	for _, tr := range trips {
		sum += tr.Miles
	}
	return sum
}

// dayRequests builds the allocation requests for one simulated day from the
// representative trip sample. Under TripIndependent each trip's energy goes
// into its own following dwell window; under TripAggregated a vehicle-day's
// energy is pooled and placed into the union of its eligible windows.
func dayRequests(trips []survey.Trip, day int, scale, kwhmi, power float64, loc model.LocationStrategy, strategy model.TripStrategy, horizon int) []request {
	cap := power * scale
	if strategy == model.TripIndependent {
		var reqs []request
		for _, tr := range trips {
			var hours []int
			if loc.Allows(tr.Site) {
				hours = windowHours(day, tr.EndHour, tr.DwellHours, horizon)
			}
			reqs = append(reqs, request{
				hours: hours,
				need:  tr.Miles * kwhmi * scale,
				cap:   cap,
			})
		}
		return reqs
	}

	// Aggregated: pool per vehicle, preserving first-encounter order.
	var order []int
	byVehicle := make(map[int]*request)
	for _, tr := range trips {
		req, ok := byVehicle[tr.VehicleID]
		if !ok {
			req = &request{cap: cap}
			byVehicle[tr.VehicleID] = req
			order = append(order, tr.VehicleID)
		}
		req.need += tr.Miles * kwhmi * scale
		if loc.Allows(tr.Site) {
			req.hours = mergeHours(req.hours, windowHours(day, tr.EndHour, tr.DwellHours, horizon))
		}
	}
	reqs := make([]request, 0, len(order))
	for _, id := range order {
		reqs = append(reqs, *byVehicle[id])
	}
	return reqs
}
