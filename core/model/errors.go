package model

import "fmt"

// InvalidInputError reports an unsupported enumeration value or an
// out-of-range scenario parameter.
type InvalidInputError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s=%v: %s", e.Param, e.Value, e.Reason)
}

// ErrInvalidInput builds an InvalidInputError for the given parameter.
func ErrInvalidInput(param string, value any, reason string) error {
	return &InvalidInputError{Param: param, Value: value, Reason: reason}
}

// DimensionMismatchError reports an array length inconsistency, typically
// between the baseline load curve and the simulation horizon derived from the
// model year.
type DimensionMismatchError struct {
	What string
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch for %s: want %d, got %d", e.What, e.Want, e.Got)
}

// ErrDimensionMismatch builds a DimensionMismatchError.
func ErrDimensionMismatch(what string, want, got int) error {
	return &DimensionMismatchError{What: what, Want: want, Got: got}
}

// DataUnavailableError reports that an external statistics table is missing
// rows required for the requested vehicle class or year.
type DataUnavailableError struct {
	Table string
	Key   string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data unavailable: table %s has no rows for %s", e.Table, e.Key)
}

// ErrDataUnavailable builds a DataUnavailableError.
func ErrDataUnavailable(table, key string) error {
	return &DataUnavailableError{Table: table, Key: key}
}
