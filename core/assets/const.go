package assets

// ContiguousStates maps postal abbreviations to names for the lower 48
// states plus the District of Columbia. Asset readers keep only rows located
// in these states.
var ContiguousStates = map[string]string{
	"AL": "Alabama", "AR": "Arkansas", "AZ": "Arizona", "CA": "California",
	"CO": "Colorado", "CT": "Connecticut", "DC": "District of Columbia",
	"DE": "Delaware", "FL": "Florida", "GA": "Georgia", "IA": "Iowa",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "MA": "Massachusetts",
	"MD": "Maryland", "ME": "Maine", "MI": "Michigan", "MN": "Minnesota",
	"MO": "Missouri", "MS": "Mississippi", "MT": "Montana",
	"NC": "North Carolina", "ND": "North Dakota", "NE": "Nebraska",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NV": "Nevada", "NY": "New York", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee",
	"TX": "Texas", "UT": "Utah", "VA": "Virginia", "VT": "Vermont",
	"WA": "Washington", "WI": "Wisconsin", "WV": "West Virginia",
	"WY": "Wyoming",
}

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	North, South, East, West float64
}

// ContiguousBounds encloses the contiguous United States. Transmission lines
// with endpoints outside the box are discarded.
var ContiguousBounds = Bounds{
	North: 49.3457868,
	South: 24.7433195,
	East:  -66.9513812,
	West:  -124.7844079,
}

// Contains reports whether the point lies strictly inside the box.
func (b Bounds) Contains(lat, lon float64) bool {
	return b.South < lat && lat < b.North && b.West < lon && lon < b.East
}

// heatRateColumns are the EPA air-markets reading columns needed for heat
// rate estimation; other columns are discarded on read to bound memory.
var heatRateColumns = []string{
	"STATE",
	"FACILITY_NAME",
	"ORISPL_CODE",
	"UNITID",
	"OP_DATE",
	"OP_HOUR",
	"GLOAD (MW)",
	"HEAT_INPUT (mmBtu)",
}
