package config

import (
	"fmt"

	"github.com/evgrid/evdemand/core/charging"
	"github.com/evgrid/evdemand/core/model"
	"github.com/evgrid/evdemand/core/weighting"
)

// Charging strategy names accepted in configuration files.
const (
	StrategySmart     = "smart"
	StrategyImmediate = "immediate"
)

// ScenarioConfig describes one charging-demand scenario as it appears in a
// configuration file. It is converted to the core charging configs after
// validation.
type ScenarioConfig struct {
	// Strategy is "smart" or "immediate".
	Strategy     string  `json:"strategy"`
	CensusRegion int     `json:"censusRegion"`
	ModelYear    int     `json:"modelYear"`
	VehRange     float64 `json:"vehRange"`
	KWhPerMile   float64 `json:"kwhmi"`
	PowerKW      float64 `json:"power"`
	// Location and Trip are the numeric strategy codes.
	Location int    `json:"locationStrategy"`
	Trip     int    `json:"tripStrategy"`
	VehType  string `json:"vehType"`
	// AreaType selects the daily weighting distribution ("urban"/"rural").
	AreaType string `json:"areaType"`
	// Heavy-duty only.
	FleetScale  float64   `json:"fleetScale"`
	Penetration []float64 `json:"penetration"`
	// KWhPerMileSub optionally overrides per-sub-class consumption rates.
	KWhPerMileSub []float64 `json:"kwhmiSub"`
}

// SetDefaults applies sane defaults.
func (c *ScenarioConfig) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = StrategySmart
	}
	if c.AreaType == "" {
		c.AreaType = string(weighting.AreaUrban)
	}
	if c.Trip == 0 {
		c.Trip = int(model.TripIndependent)
	}
	if c.VehType == "" {
		c.VehType = "LDV"
	}
}

// Validate checks the scenario block. Full parameter validation happens in
// the core configs; this catches file-level mistakes early.
func (c ScenarioConfig) Validate() error {
	if c.Strategy != StrategySmart && c.Strategy != StrategyImmediate {
		return fmt.Errorf("scenario.strategy must be %q or %q", StrategySmart, StrategyImmediate)
	}
	if c.ModelYear == 0 {
		return fmt.Errorf("scenario.modelYear is required")
	}
	if _, err := model.ParseVehicleClass(c.VehType); err != nil {
		return err
	}
	return nil
}

// Class returns the parsed vehicle class.
func (c ScenarioConfig) Class() (model.VehicleClass, error) {
	return model.ParseVehicleClass(c.VehType)
}

// Light converts the scenario to a light-duty charging config.
func (c ScenarioConfig) Light() (charging.Config, error) {
	class, err := c.Class()
	if err != nil {
		return charging.Config{}, err
	}
	cfg := charging.Config{
		CensusRegion: c.CensusRegion,
		ModelYear:    c.ModelYear,
		VehicleRange: c.VehRange,
		KWhPerMile:   c.KWhPerMile,
		PowerKW:      c.PowerKW,
		Location:     model.LocationStrategy(c.Location),
		Class:        class,
		Trip:         model.TripStrategy(c.Trip),
	}
	cfg.SetDefaults()
	return cfg, cfg.Validate()
}

// Heavy converts the scenario to a depot-fleet charging config.
func (c ScenarioConfig) Heavy() (charging.HeavyConfig, error) {
	class, err := c.Class()
	if err != nil {
		return charging.HeavyConfig{}, err
	}
	cfg := charging.HeavyConfig{
		ModelYear:    c.ModelYear,
		VehicleRange: c.VehRange,
		PowerKW:      c.PowerKW,
		FleetScale:   c.FleetScale,
		Location:     model.LocationStrategy(c.Location),
		Class:        class,
		Trip:         model.TripStrategy(c.Trip),
		Penetration:  c.Penetration,
		KWhPerMile:   c.KWhPerMileSub,
	}
	cfg.SetDefaults()
	return cfg, cfg.Validate()
}

// Area returns the weighting area type.
func (c ScenarioConfig) Area() weighting.AreaType {
	return weighting.AreaType(c.AreaType)
}
