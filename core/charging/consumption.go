package charging

import "github.com/evgrid/evdemand/core/model"

// Heavy-duty fleets are blended across weight sub-classes, each with its own
// energy-consumption rate.

// SubclassNames lists the sub-classes of each depot fleet class, in the order
// penetration fractions and rate overrides are given.
var SubclassNames = map[model.VehicleClass][]string{
	model.ClassMDV: {"MDV"},
	model.ClassHDV: {"LHDV", "MHDV", "HHDV"},
}

// subclassRates holds bundled energy-consumption rates in kWh per mile
// (light-heavy, medium-heavy and heavy-heavy duty for HDV).
var subclassRates = map[model.VehicleClass][]float64{
	model.ClassMDV: {2.13},
	model.ClassHDV: {2.40, 2.78, 3.17},
}
