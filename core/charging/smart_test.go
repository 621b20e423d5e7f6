package charging

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/evgrid/evdemand/core/model"
	"github.com/evgrid/evdemand/core/survey"
	"github.com/evgrid/evdemand/core/weighting"
)

const testYear = 2017

func lightConfig() Config {
	return Config{
		CensusRegion: 1,
		ModelYear:    testYear,
		VehicleRange: 100,
		KWhPerMile:   0.242,
		PowerKW:      6.6,
		Location:     model.LocationHomeWork,
		Class:        model.ClassLDV,
		Trip:         model.TripIndependent,
	}
}

// lightTable is a small survey sample: two weekday trips for one vehicle, one
// weekend trip for another, a light-duty truck that class filtering drops and
// a commuter whose daily mileage exceeds any test range.
func lightTable() *survey.Table {
	return &survey.Table{
		Region: 1,
		Trips: []survey.Trip{
			{VehicleID: 1, TripNumber: 1, DayOfWeek: 3, Miles: 10, TotalVehicleMiles: 30, StartHour: 8, EndHour: 8.5, DwellHours: 9, Site: model.SiteWork, TypeCode: 1},
			{VehicleID: 1, TripNumber: 2, DayOfWeek: 3, Miles: 20, TotalVehicleMiles: 30, StartHour: 17.5, EndHour: 18, DwellHours: 12, Site: model.SiteHome, TypeCode: 2},
			{VehicleID: 2, TripNumber: 1, DayOfWeek: 7, Miles: 15, TotalVehicleMiles: 15, StartHour: 11, EndHour: 12, DwellHours: 16, Site: model.SiteHome, TypeCode: 1},
			{VehicleID: 3, TripNumber: 1, DayOfWeek: 2, Miles: 40, TotalVehicleMiles: 40, StartHour: 9, EndHour: 10, DwellHours: 8, Site: model.SiteOther, TypeCode: 5},
			{VehicleID: 4, TripNumber: 1, DayOfWeek: 4, Miles: 250, TotalVehicleMiles: 250, StartHour: 6, EndHour: 10, DwellHours: 10, Site: model.SiteHome, TypeCode: 1},
		},
	}
}

func uniformWeights(year int) []float64 {
	days := weighting.Days(year)
	w := make([]float64, days)
	for i := range w {
		w[i] = 1 / float64(days)
	}
	return w
}

func flatBaseline(year int, level float64) []float64 {
	b := make([]float64, weighting.Hours(year))
	for i := range b {
		b[i] = level
	}
	return b
}

func TestSmart_ConservesDemandWithAmpleHeadroom(t *testing.T) {
	cfg := lightConfig()
	cfg.PowerKW = 1000 // effectively unbounded
	res, err := Smart(cfg, flatBaseline(testYear, 50), uniformWeights(testYear), lightTable())
	if err != nil {
		t.Fatalf("smart: %v", err)
	}

	// With uniform weights total demand is annual fleet miles times the
	// consumption rate; every trip dwells at an equipped site, so nothing is
	// dropped.
	fleet, err := electrifiedFleet(lightTable(), cfg.Class, cfg.VehicleRange)
	if err != nil {
		t.Fatalf("fleet: %v", err)
	}
	var annual float64
	for _, we := range weighting.Weekends(testYear) {
		if we {
			annual += fleet.WeekendMiles()
		} else {
			annual += fleet.WeekdayMiles()
		}
	}
	wantDemand := annual * cfg.KWhPerMile
	if math.Abs(res.Demand-wantDemand) > 1e-6*wantDemand {
		t.Errorf("demand %v, want %v", res.Demand, wantDemand)
	}
	if math.Abs(res.Allocated-res.Demand) > 1e-6*res.Demand {
		t.Errorf("allocated %v, want full demand %v", res.Allocated, res.Demand)
	}
	if s := floats.Sum(res.Shortfall); s > 1e-9 {
		t.Errorf("unexpected shortfall %v", s)
	}
}

func TestSmart_OutputNonNegativeAndSized(t *testing.T) {
	res, err := Smart(lightConfig(), flatBaseline(testYear, 50), uniformWeights(testYear), lightTable())
	if err != nil {
		t.Fatalf("smart: %v", err)
	}
	if len(res.Curve) != weighting.Hours(testYear) {
		t.Fatalf("curve length %d, want %d", len(res.Curve), weighting.Hours(testYear))
	}
	for h, v := range res.Curve {
		if v < 0 || math.IsNaN(v) {
			t.Fatalf("hour %d: %v", h, v)
		}
	}
}

func TestSmart_ConservationNeverExceedsDemand(t *testing.T) {
	cfg := lightConfig()
	cfg.PowerKW = 0.5 // cramped: force shortfall
	res, err := Smart(cfg, flatBaseline(testYear, 50), uniformWeights(testYear), lightTable())
	if err != nil {
		t.Fatalf("smart: %v", err)
	}
	if res.Allocated > res.Demand+1e-9 {
		t.Fatalf("allocated %v exceeds demand %v", res.Allocated, res.Demand)
	}
	got := res.Demand - floats.Sum(res.Shortfall)
	if math.Abs(got-res.Allocated) > 1e-6 {
		t.Fatalf("allocated %v, demand minus shortfall %v", res.Allocated, got)
	}
	if floats.Sum(res.Shortfall) <= 0 {
		t.Fatalf("expected shortfall with a cramped power cap")
	}
}

func TestSmart_Deterministic(t *testing.T) {
	cfg := lightConfig()
	base := flatBaseline(testYear, 50)
	// Perturb the baseline so ordering decisions are non-trivial.
	for i := range base {
		base[i] += float64(i%24) * 3
	}
	w := uniformWeights(testYear)
	a, err := Smart(cfg, base, w, lightTable())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := Smart(cfg, base, w, lightTable())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(a.Curve, b.Curve) {
		t.Fatalf("identical inputs produced different curves")
	}
}

func TestSmart_FillsValleyFirst(t *testing.T) {
	cfg := lightConfig()
	cfg.Location = model.LocationHome
	cfg.Trip = model.TripAggregated
	base := flatBaseline(testYear, 100)
	// Carve a nightly valley into the overnight dwell window.
	for i := range base {
		if h := i % 24; h >= 2 && h < 4 {
			base[i] = 10
		}
	}
	res, err := Smart(cfg, base, uniformWeights(testYear), lightTable())
	if err != nil {
		t.Fatalf("smart: %v", err)
	}
	day := 3 // first Wednesday of 2017 is Jan 4, index 3: a weekday
	valley := res.Curve[day*24+2] + res.Curve[day*24+3]
	evening := res.Curve[day*24+18] + res.Curve[day*24+19]
	if valley <= evening {
		t.Fatalf("valley hours got %v, evening got %v; want valley preferred", valley, evening)
	}
}

func TestSmart_PowerCapRespected(t *testing.T) {
	cfg := lightConfig()
	cfg.Location = model.LocationHome // one home dwell per vehicle-day
	res, err := Smart(cfg, flatBaseline(testYear, 50), uniformWeights(testYear), lightTable())
	if err != nil {
		t.Fatalf("smart: %v", err)
	}

	// Bound the per-request cap by the largest day scale.
	fleet, err := electrifiedFleet(lightTable(), cfg.Class, cfg.VehicleRange)
	if err != nil {
		t.Fatalf("fleet: %v", err)
	}
	daily, err := fleet.DailyFleetMiles(uniformWeights(testYear), weighting.Weekends(testYear))
	if err != nil {
		t.Fatalf("daily miles: %v", err)
	}
	maxScale := 0.0
	for d, m := range daily {
		var sample float64
		if weighting.Weekends(testYear)[d] {
			sample = fleet.WeekendMiles()
		} else {
			sample = fleet.WeekdayMiles()
		}
		if sample > 0 && m/sample > maxScale {
			maxScale = m / sample
		}
	}
	// Home windows of consecutive days can stack in overlapping hours, so
	// allow two stacked requests.
	bound := 2*cfg.PowerKW*maxScale + 1e-9
	for h, v := range res.Curve {
		if v > bound {
			t.Fatalf("hour %d allocation %v exceeds cap bound %v", h, v, bound)
		}
	}
}

func TestSmart_InputValidation(t *testing.T) {
	base := flatBaseline(testYear, 50)
	w := uniformWeights(testYear)

	t.Run("short baseline", func(t *testing.T) {
		_, err := Smart(lightConfig(), base[:100], w, lightTable())
		var dim *model.DimensionMismatchError
		if !errors.As(err, &dim) {
			t.Fatalf("got %v, want DimensionMismatchError", err)
		}
	})
	t.Run("short weights", func(t *testing.T) {
		_, err := Smart(lightConfig(), base, w[:10], lightTable())
		var dim *model.DimensionMismatchError
		if !errors.As(err, &dim) {
			t.Fatalf("got %v, want DimensionMismatchError", err)
		}
	})
	t.Run("bad census region", func(t *testing.T) {
		cfg := lightConfig()
		cfg.CensusRegion = 12
		_, err := Smart(cfg, base, w, lightTable())
		var inv *model.InvalidInputError
		if !errors.As(err, &inv) {
			t.Fatalf("got %v, want InvalidInputError", err)
		}
	})
	t.Run("heavy class rejected", func(t *testing.T) {
		cfg := lightConfig()
		cfg.Class = model.ClassHDV
		_, err := Smart(cfg, base, w, lightTable())
		var inv *model.InvalidInputError
		if !errors.As(err, &inv) {
			t.Fatalf("got %v, want InvalidInputError", err)
		}
	})
	t.Run("no rows for class", func(t *testing.T) {
		table := &survey.Table{Region: 1, Trips: []survey.Trip{
			{VehicleID: 1, Miles: 5, TotalVehicleMiles: 5, EndHour: 10, DwellHours: 4, Site: model.SiteHome, TypeCode: 7},
		}}
		_, err := Smart(lightConfig(), base, w, table)
		var missing *model.DataUnavailableError
		if !errors.As(err, &missing) {
			t.Fatalf("got %v, want DataUnavailableError", err)
		}
	})
}

func TestSmart_ZeroDwellNeverCharges(t *testing.T) {
	cfg := lightConfig()
	table := &survey.Table{Region: 1, Trips: []survey.Trip{
		{VehicleID: 1, DayOfWeek: 3, Miles: 10, TotalVehicleMiles: 10, EndHour: 9, DwellHours: 0, Site: model.SiteHome, TypeCode: 1},
		{VehicleID: 2, DayOfWeek: 7, Miles: 10, TotalVehicleMiles: 10, EndHour: 9, DwellHours: 0, Site: model.SiteHome, TypeCode: 1},
	}}
	res, err := Smart(cfg, flatBaseline(testYear, 50), uniformWeights(testYear), table)
	if err != nil {
		t.Fatalf("smart: %v", err)
	}
	if res.Allocated != 0 {
		t.Fatalf("allocated %v with zero dwell time", res.Allocated)
	}
	if floats.Sum(res.Shortfall) <= 0 {
		t.Fatalf("expected the whole demand recorded as shortfall")
	}
}

func TestSmart_TripStrategiesDiffer(t *testing.T) {
	base := flatBaseline(testYear, 50)
	for i := range base {
		base[i] += float64((i * 7) % 24)
	}
	w := uniformWeights(testYear)

	cfg := lightConfig()
	cfg.Trip = model.TripIndependent
	indep, err := Smart(cfg, base, w, lightTable())
	if err != nil {
		t.Fatalf("independent: %v", err)
	}
	cfg.Trip = model.TripAggregated
	agg, err := Smart(cfg, base, w, lightTable())
	if err != nil {
		t.Fatalf("aggregated: %v", err)
	}
	// Same total energy, different placement.
	if math.Abs(indep.Demand-agg.Demand) > 1e-9 {
		t.Fatalf("strategies disagree on demand: %v vs %v", indep.Demand, agg.Demand)
	}
	if reflect.DeepEqual(indep.Curve, agg.Curve) {
		t.Fatalf("expected the strategies to shape the curve differently")
	}
}
