package charging

import (
	"gonum.org/v1/gonum/floats"

	"github.com/evgrid/evdemand/core/model"
	"github.com/evgrid/evdemand/core/survey"
	"github.com/evgrid/evdemand/core/weighting"
)

// Immediate computes the charging load curve for a light-duty fleet under the
// immediate strategy: vehicles plug in on arrival at an equipped site and
// draw full power until their trip energy is recovered or they depart. The
// baseline curve plays no role in this strategy.
func Immediate(cfg Config, weights []float64, table *survey.Table) (*Result, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	days := weighting.Days(cfg.ModelYear)
	horizon := days * 24
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
		scale := daily[d] / sampleMiles
		for _, req := range dayRequests(trips, d, scale, cfg.KWhPerMile, cfg.PowerKW, cfg.Location, cfg.Trip, horizon) {
			res.Demand += req.need
			placed := fillSequential(res.Curve, req.hours, req.cap, req.need)
			res.Shortfall[d] += req.need - placed
		}
	}
	res.Allocated = floats.Sum(res.Curve)
	return res, nil
}
