package assets

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgrid/evdemand/core/model"
)

const linesGeoJSON = `{
  "features": [
    {
      "properties": {"ID": 1, "TYPE": "AC; OVERHEAD", "STATUS": "IN SERVICE", "OWNER": "UTILITY A", "VOLTAGE": 345},
      "geometry": {"type": "LineString", "coordinates": [[-104.9, 39.7], [-105.1, 39.9]]}
    },
    {
      "properties": {"ID": 2, "TYPE": "AC; OVERHEAD", "STATUS": "RETIRED", "OWNER": "UTILITY A", "VOLTAGE": 230},
      "geometry": {"type": "LineString", "coordinates": [[-104.9, 39.7], [-105.1, 39.9]]}
    },
    {
      "properties": {"ID": 3, "TYPE": "DC; OVERHEAD", "STATUS": "NOT AVAILABLE", "OWNER": "UTILITY B", "VOLTAGE": -999999},
      "geometry": {"type": "MultiLineString", "coordinates": [[[-95.4, 29.8], [-95.6, 29.9]], [[-90.0, 35.0]]]}
    },
    {
      "properties": {"ID": 4, "TYPE": "AC; OVERHEAD", "STATUS": "IN SERVICE", "OWNER": "UTILITY C", "VOLTAGE": 115},
      "geometry": {"type": "LineString", "coordinates": [[-149.9, 61.2], [-149.7, 61.1]]}
    }
  ]
}`

func TestTransmissionLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.zip")
	writeZip(t, path, map[string]string{
		"Electric_Power_Transmission_Lines.geojson": linesGeoJSON,
	})

	lines, err := TransmissionLines(path)
	require.NoError(t, err)

	// Line 2 is retired and line 4 sits in Alaska; both are dropped.
	require.Len(t, lines, 2)

	first := lines[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "IN SERVICE", first.Status)
	assert.InDelta(t, 345.0, first.VoltageKV, 1e-12)
	require.Len(t, first.Line, 2)
	assert.InDelta(t, -104.9, first.Line[0].X, 1e-12)
	assert.InDelta(t, 39.7, first.Line[0].Y, 1e-12)

	// The missing-voltage marker becomes NaN and only the first part of a
	// MultiLineString is kept.
	second := lines[1]
	assert.Equal(t, int64(3), second.ID)
	assert.True(t, math.IsNaN(second.VoltageKV))
	assert.Len(t, second.Line, 2)
}

func TestTransmissionLines_NoGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.zip")
	writeZip(t, path, map[string]string{"readme.txt": "no topology here"})
	_, err := TransmissionLines(path)
	var unavail *model.DataUnavailableError
	require.ErrorAs(t, err, &unavail)
}

func TestDecodeLine_BadGeometry(t *testing.T) {
	_, err := decodeLine("Point", []byte(`[-104.9, 39.7]`))
	var inv *model.InvalidInputError
	require.ErrorAs(t, err, &inv)
}
