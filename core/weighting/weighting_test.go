package weighting

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/evgrid/evdemand/core/model"
)

func TestDaily_LengthAndSum(t *testing.T) {
	cases := []struct {
		year string
		y    int
		days int
	}{
		{"regular", 2017, 365},
		{"leap", 2020, 366},
		{"century leap", 2000, 366},
	}
	for _, tc := range cases {
		t.Run(tc.year, func(t *testing.T) {
			w, err := Daily(tc.y, AreaUrban)
			if err != nil {
				t.Fatalf("daily: %v", err)
			}
			if len(w) != tc.days {
				t.Fatalf("length %d, want %d", len(w), tc.days)
			}
			if sum := floats.Sum(w); math.Abs(sum-1) > 1e-9 {
				t.Fatalf("sum %v, want 1", sum)
			}
			for i, v := range w {
				if v < 0 {
					t.Fatalf("day %d has negative weight %v", i, v)
				}
			}
		})
	}
}

func TestDaily_Idempotent(t *testing.T) {
	a, err := Daily(2017, AreaUrban)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	b, err := Daily(2017, AreaUrban)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated calls disagree")
	}
}

func TestDaily_WeekdaysOutweighWeekendDays(t *testing.T) {
	w, err := Daily(2017, AreaUrban)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	// Jan 1 2017 is a Sunday, Jan 2 a Monday, both in the same month.
	if w[1] <= w[0] {
		t.Fatalf("Monday weight %v not above Sunday weight %v", w[1], w[0])
	}
}

func TestDaily_AreaTypesDiffer(t *testing.T) {
	urban, err := Daily(2017, AreaUrban)
	if err != nil {
		t.Fatalf("urban: %v", err)
	}
	rural, err := Daily(2017, AreaRural)
	if err != nil {
		t.Fatalf("rural: %v", err)
	}
	if reflect.DeepEqual(urban, rural) {
		t.Fatalf("urban and rural distributions should differ")
	}
}

func TestDaily_InvalidInputs(t *testing.T) {
	t.Run("bad area", func(t *testing.T) {
		_, err := Daily(2017, AreaType("suburban"))
		var inv *model.InvalidInputError
		if !errors.As(err, &inv) {
			t.Fatalf("got %v, want InvalidInputError", err)
		}
	})
	t.Run("year out of range", func(t *testing.T) {
		_, err := Daily(1492, AreaUrban)
		var inv *model.InvalidInputError
		if !errors.As(err, &inv) {
			t.Fatalf("got %v, want InvalidInputError", err)
		}
	})
}

func TestWeekends(t *testing.T) {
	we := Weekends(2017)
	if len(we) != 365 {
		t.Fatalf("length %d, want 365", len(we))
	}
	// Jan 1 2017: Sunday. Jan 2: Monday. Jan 7: Saturday.
	if !we[0] || we[1] || !we[6] {
		t.Fatalf("weekend flags wrong at start of 2017: %v", we[:7])
	}
	n := 0
	for _, w := range we {
		if w {
			n++
		}
	}
	if n != 105 {
		t.Fatalf("2017 has %d weekend days, want 105", n)
	}
}

func TestHours(t *testing.T) {
	if h := Hours(2017); h != 8760 {
		t.Fatalf("hours %d, want 8760", h)
	}
	if h := Hours(2020); h != 8784 {
		t.Fatalf("hours %d, want 8784", h)
	}
}
