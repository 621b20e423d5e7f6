package model

import "strings"

// VehicleClass identifies the fleet segment a charging scenario models.
type VehicleClass int

const (
	// ClassLDV covers light-duty passenger vehicles (survey type codes 1-3).
	ClassLDV VehicleClass = iota + 1
	// ClassLDT covers light-duty trucks (survey type codes 4-6).
	ClassLDT
	// ClassMDV covers medium-duty delivery fleets.
	ClassMDV
	// ClassHDV covers heavy-duty freight fleets.
	ClassHDV
)

func (c VehicleClass) String() string {
	switch c {
	case ClassLDV:
		return "LDV"
	case ClassLDT:
		return "LDT"
	case ClassMDV:
		return "MDV"
	case ClassHDV:
		return "HDV"
	}
	return "unknown"
}

// LightDuty reports whether the class is modeled from per-trip survey records
// rather than depot schedules.
func (c VehicleClass) LightDuty() bool {
	return c == ClassLDV || c == ClassLDT
}

// ParseVehicleClass converts the conventional class label ("LDV", "LDT",
// "MDV", "HDV") to a VehicleClass.
func ParseVehicleClass(s string) (VehicleClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LDV":
		return ClassLDV, nil
	case "LDT":
		return ClassLDT, nil
	case "MDV":
		return ClassMDV, nil
	case "HDV":
		return ClassHDV, nil
	}
	return 0, ErrInvalidInput("veh_type", s, "must be one of LDV, LDT, MDV, HDV")
}

// DwellSite is the location category of a parked interval. Charging can only
// happen at sites the scenario's LocationStrategy assumes to be equipped.
type DwellSite int

const (
	SiteHome DwellSite = iota + 1
	SiteWork
	SiteSchool
	SiteOther
	// SiteDepot is the overnight base of medium- and heavy-duty fleets. It is
	// treated as the fleet's "home" by location strategies.
	SiteDepot
)

func (s DwellSite) String() string {
	switch s {
	case SiteHome:
		return "home"
	case SiteWork:
		return "work"
	case SiteSchool:
		return "school"
	case SiteOther:
		return "other"
	case SiteDepot:
		return "depot"
	}
	return "unknown"
}

// ParseDwellSite converts a survey site code to a DwellSite.
func ParseDwellSite(code int) (DwellSite, error) {
	if code < int(SiteHome) || code > int(SiteDepot) {
		return 0, ErrInvalidInput("dwell_site", code, "must be between 1 and 5")
	}
	return DwellSite(code), nil
}

// LocationStrategy selects which dwell-site categories are assumed to have
// charging infrastructure available.
type LocationStrategy int

const (
	// LocationHome assumes chargers at home (or depot) only.
	LocationHome LocationStrategy = iota + 1
	// LocationHomeWork assumes chargers at home and at the workplace.
	LocationHomeWork
	// LocationAnywhere assumes ubiquitous charging availability.
	LocationAnywhere
	// LocationHomeSchool assumes chargers at home and at schools.
	LocationHomeSchool
	// LocationHomeWorkSchool assumes chargers at home, work and school.
	LocationHomeWorkSchool
)

// ParseLocationStrategy validates a numeric strategy code.
func ParseLocationStrategy(code int) (LocationStrategy, error) {
	if code < int(LocationHome) || code > int(LocationHomeWorkSchool) {
		return 0, ErrInvalidInput("location_strategy", code, "must be between 1 and 5")
	}
	return LocationStrategy(code), nil
}

// Allows reports whether charging equipment is assumed present at the site.
func (l LocationStrategy) Allows(site DwellSite) bool {
	if site == SiteDepot {
		// Depot fleets charge at base under every strategy that includes home.
		site = SiteHome
	}
	switch l {
	case LocationHome:
		return site == SiteHome
	case LocationHomeWork:
		return site == SiteHome || site == SiteWork
	case LocationAnywhere:
		return true
	case LocationHomeSchool:
		return site == SiteHome || site == SiteSchool
	case LocationHomeWorkSchool:
		return site == SiteHome || site == SiteWork || site == SiteSchool
	}
	return false
}

// TripStrategy selects how multi-trip-per-day energy needs are apportioned
// across eligible dwell hours.
type TripStrategy int

const (
	// TripIndependent allocates each trip's energy into the dwell window
	// following that trip.
	TripIndependent TripStrategy = iota + 1
	// TripAggregated pools a vehicle-day's trip energy and allocates it into
	// the union of the day's eligible dwell windows.
	TripAggregated
)

// ParseTripStrategy validates a numeric strategy code.
func ParseTripStrategy(code int) (TripStrategy, error) {
	if code != int(TripIndependent) && code != int(TripAggregated) {
		return 0, ErrInvalidInput("trip_strategy", code, "must be 1 or 2")
	}
	return TripStrategy(code), nil
}
