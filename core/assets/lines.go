package assets

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/ctessum/geom"

	"github.com/evgrid/evdemand/core/model"
)

// TransmissionLine is one cleaned HIFLD electric power transmission line.
type TransmissionLine struct {
	ID        int64
	Type      string
	Status    string
	Owner     string
	VoltageKV float64 // NaN when the source records the missing-value marker
	Line      geom.LineString
}

// The HIFLD dataset records missing voltages with a dummy marker.
const missingVoltage = -999999

type geoFeatureCollection struct {
	Features []geoFeature `json:"features"`
}

type geoFeature struct {
	Properties struct {
		ID      int64   `json:"ID"`
		Type    string  `json:"TYPE"`
		Status  string  `json:"STATUS"`
		Owner   string  `json:"OWNER"`
		Voltage float64 `json:"VOLTAGE"`
	} `json:"properties"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
}

// TransmissionLines reads the HIFLD Electric Power Transmission Lines zip
// file and keeps in-service lines whose endpoints fall inside the contiguous
// United States.
func TransmissionLines(path string) ([]TransmissionLine, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open topology archive: %w", err)
	}
	defer zr.Close()

	var fc geoFeatureCollection
	found := false
	for _, zf := range zr.File {
		if !strings.HasSuffix(strings.ToLower(zf.Name), ".geojson") {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", zf.Name, err)
		}
		err = json.NewDecoder(rc).Decode(&fc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", zf.Name, err)
		}
		found = true
		break
	}
	if !found {
		return nil, model.ErrDataUnavailable("transmission lines", "no geojson member in archive")
	}

	var lines []TransmissionLine
	for _, f := range fc.Features {
		if f.Properties.Status != "IN SERVICE" && f.Properties.Status != "NOT AVAILABLE" {
			continue
		}
		ls, err := decodeLine(f.Geometry.Type, f.Geometry.Coordinates)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", f.Properties.ID, err)
		}
		if len(ls) < 2 {
			continue
		}
		first, last := ls[0], ls[len(ls)-1]
		if !ContiguousBounds.Contains(first.Y, first.X) || !ContiguousBounds.Contains(last.Y, last.X) {
			continue
		}
		voltage := roundTo(f.Properties.Voltage, 3)
		if voltage == missingVoltage {
			voltage = math.NaN()
		}
		lines = append(lines, TransmissionLine{
			ID:        f.Properties.ID,
			Type:      f.Properties.Type,
			Status:    f.Properties.Status,
			Owner:     f.Properties.Owner,
			VoltageKV: voltage,
			Line:      ls,
		})
	}
	return lines, nil
}

// decodeLine converts GeoJSON LineString or MultiLineString coordinates into
// a geom.LineString. MultiLineStrings keep their first part, matching the
// source topology where parts beyond the first are artifacts.
func decodeLine(geomType string, raw json.RawMessage) (geom.LineString, error) {
	var coords [][]float64
	switch geomType {
	case "LineString":
		if err := json.Unmarshal(raw, &coords); err != nil {
			return nil, err
		}
	case "MultiLineString":
		var multi [][][]float64
		if err := json.Unmarshal(raw, &multi); err != nil {
			return nil, err
		}
		if len(multi) > 0 {
			coords = multi[0]
		}
	default:
		return nil, model.ErrInvalidInput("geometry type", geomType, "expected LineString or MultiLineString")
	}
	ls := make(geom.LineString, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return nil, model.ErrInvalidInput("coordinates", c, "expected [lon, lat]")
		}
		ls = append(ls, geom.Point{X: c[0], Y: c[1]})
	}
	return ls, nil
}
