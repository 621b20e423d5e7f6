package charging

import (
	"math"

	"github.com/evgrid/evdemand/core/model"
)

// Config holds the scenario parameters for light-duty charging estimates.
type Config struct {
	CensusRegion int                    `json:"census_region"`
	ModelYear    int                    `json:"model_year"`
	VehicleRange float64                `json:"veh_range"` // miles on a full charge
	KWhPerMile   float64                `json:"kwhmi"`
	PowerKW      float64                `json:"power"` // charger power per vehicle
	Location     model.LocationStrategy `json:"location_strategy"`
	Class        model.VehicleClass     `json:"veh_type"`
	Trip         model.TripStrategy     `json:"trip_strategy"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Trip == 0 {
		c.Trip = model.TripIndependent
	}
	if c.Location == 0 {
		c.Location = model.LocationHomeWork
	}
}

// Validate checks the scenario parameters.
func (c Config) Validate() error {
	if c.CensusRegion < 1 || c.CensusRegion > 9 {
		return model.ErrInvalidInput("census_region", c.CensusRegion, "must be between 1 and 9")
	}
	if !c.Class.LightDuty() {
		return model.ErrInvalidInput("veh_type", c.Class.String(), "must be LDV or LDT; use HeavyConfig for depot fleets")
	}
	if c.VehicleRange <= 0 {
		return model.ErrInvalidInput("veh_range", c.VehicleRange, "must be positive")
	}
	if c.KWhPerMile <= 0 {
		return model.ErrInvalidInput("kwhmi", c.KWhPerMile, "must be positive")
	}
	if c.PowerKW <= 0 {
		return model.ErrInvalidInput("power", c.PowerKW, "must be positive")
	}
	if _, err := model.ParseLocationStrategy(int(c.Location)); err != nil {
		return err
	}
	if _, err := model.ParseTripStrategy(int(c.Trip)); err != nil {
		return err
	}
	return nil
}

// HeavyConfig holds the scenario parameters for medium- and heavy-duty depot
// fleets. Energy consumption is blended across sub-classes weighted by their
// penetration fractions.
type HeavyConfig struct {
	ModelYear    int                    `json:"model_year"`
	VehicleRange float64                `json:"veh_range"`
	PowerKW      float64                `json:"power"`
	FleetScale   float64                `json:"fleet_scale"` // electrified fleet multiplier
	Location     model.LocationStrategy `json:"location_strategy"`
	Class        model.VehicleClass     `json:"veh_type"`
	Trip         model.TripStrategy     `json:"trip_strategy"`
	// Penetration fractions per sub-class; must sum to 1. Defaults to an
	// equal split across the class's sub-classes.
	Penetration []float64 `json:"penetration"`
	// KWhPerMile optionally overrides the bundled per-sub-class rates.
	KWhPerMile []float64 `json:"kwhmi"`
}

// SetDefaults applies sane defaults.
func (c *HeavyConfig) SetDefaults() {
	if c.Trip == 0 {
		c.Trip = model.TripIndependent
	}
	if c.Location == 0 {
		c.Location = model.LocationHome
	}
	if c.FleetScale == 0 {
		c.FleetScale = 1
	}
	if n := len(subclassRates[c.Class]); n > 0 && len(c.Penetration) == 0 {
		c.Penetration = make([]float64, n)
		for i := range c.Penetration {
			c.Penetration[i] = 1 / float64(n)
		}
	}
}

// Validate checks the scenario parameters.
func (c HeavyConfig) Validate() error {
	if c.Class != model.ClassMDV && c.Class != model.ClassHDV {
		return model.ErrInvalidInput("veh_type", c.Class.String(), "must be MDV or HDV")
	}
	if c.VehicleRange <= 0 {
		return model.ErrInvalidInput("veh_range", c.VehicleRange, "must be positive")
	}
	if c.PowerKW <= 0 {
		return model.ErrInvalidInput("power", c.PowerKW, "must be positive")
	}
	if c.FleetScale <= 0 {
		return model.ErrInvalidInput("fleet_scale", c.FleetScale, "must be positive")
	}
	n := len(subclassRates[c.Class])
	if len(c.Penetration) != n {
		return model.ErrInvalidInput("penetration", len(c.Penetration), "one fraction per sub-class required")
	}
	var sum float64
	for _, p := range c.Penetration {
		if p < 0 {
			return model.ErrInvalidInput("penetration", p, "fractions must be non-negative")
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-6 {
		return model.ErrInvalidInput("penetration", sum, "fractions must sum to 1")
	}
	if len(c.KWhPerMile) != 0 && len(c.KWhPerMile) != n {
		return model.ErrInvalidInput("kwhmi", len(c.KWhPerMile), "one rate per sub-class required")
	}
	for _, r := range c.KWhPerMile {
		if r <= 0 {
			return model.ErrInvalidInput("kwhmi", r, "rates must be positive")
		}
	}
	if _, err := model.ParseLocationStrategy(int(c.Location)); err != nil {
		return err
	}
	if _, err := model.ParseTripStrategy(int(c.Trip)); err != nil {
		return err
	}
	return nil
}

// BlendedRate returns the fleet-average energy consumption in kWh per mile,
// weighting each sub-class rate by its penetration fraction.
func (c HeavyConfig) BlendedRate() float64 {
	rates := c.KWhPerMile
	if len(rates) == 0 {
		rates = subclassRates[c.Class]
	}
	var blended float64
	for i, r := range rates {
		blended += c.Penetration[i] * r
	}
	return blended
}
