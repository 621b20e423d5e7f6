package loadcurve

import (
	"fmt"
	"os"

	"bitbucket.org/ctessum/cdf"

	"github.com/evgrid/evdemand/core/model"
)

// ReadNetCDF reads the named variable from a NetCDF classic file and returns
// it as a flat float64 array.
func ReadNetCDF(path, varName string) ([]float64, error) {
	ff, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open netcdf file: %w", err)
	}
	defer ff.Close()

	f, err := cdf.Open(ff)
	if err != nil {
		return nil, fmt.Errorf("read netcdf header %s: %w", path, err)
	}
	found := false
	for _, v := range f.Header.Variables() {
		if v == varName {
			found = true
			break
		}
	}
	if !found {
		return nil, model.ErrDataUnavailable(path, fmt.Sprintf("variable %s", varName))
	}

	r := f.Reader(varName, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("read netcdf variable %s: %w", varName, err)
	}
	switch data := buf.(type) {
	case []float64:
		return data, nil
	case []float32:
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, model.ErrInvalidInput("netcdf variable", varName, "unsupported storage type")
	}
}

// WriteNetCDF writes curve as a one-dimensional float64 variable.
func WriteNetCDF(path, varName string, curve []float64) error {
	h := cdf.NewHeader([]string{"hour"}, []int{len(curve)})
	h.AddVariable(varName, []string{"hour"}, []float64{0})
	h.AddAttribute(varName, "description", "hourly load")
	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("building netcdf header: %w", err)
	}

	ff, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create netcdf file: %w", err)
	}
	defer ff.Close()

	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("write netcdf header %s: %w", path, err)
	}
	w := f.Writer(varName, []int{0}, []int{len(curve)})
	if _, err := w.Write(curve); err != nil {
		return fmt.Errorf("write netcdf variable %s: %w", varName, err)
	}
	return nil
}
