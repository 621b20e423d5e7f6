package charging

import (
	"gonum.org/v1/gonum/floats"

	"github.com/evgrid/evdemand/core/model"
	"github.com/evgrid/evdemand/core/survey"
	"github.com/evgrid/evdemand/core/weighting"
)

// SmartHeavyDuty computes the smart-charging load curve for a medium- or
// heavy-duty depot fleet. Depot schedules repeat daily, so the fleet's energy
// need is constant across the year instead of weighted by day; consumption is
// blended across weight sub-classes by penetration fraction.
func SmartHeavyDuty(cfg HeavyConfig, baseline []float64, table *survey.Table) (*Result, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	days := weighting.Days(cfg.ModelYear)
	horizon := days * 24
	if len(baseline) != horizon {
		return nil, model.ErrDimensionMismatch("baseline load curve", horizon, len(baseline))
	}

	fleet, err := electrifiedFleet(table, cfg.Class, cfg.VehicleRange)
	if err != nil {
		return nil, err
	}

	rate := cfg.BlendedRate()
	res := &Result{
		Curve:     make([]float64, horizon),
		Shortfall: make([]float64, days),
	}
	for d := 0; d < days; d++ {
		for _, req := range dayRequests(fleet.Trips, d, cfg.FleetScale, rate, cfg.PowerKW, cfg.Location, cfg.Trip, horizon) {
			res.Demand += req.need
			placed := waterFill(baseline, res.Curve, req.hours, req.cap, req.need)
			res.Shortfall[d] += req.need - placed
		}
	}
	res.Allocated = floats.Sum(res.Curve)
	return res, nil
}
