package charging

import "math"

// epsilon below which remaining energy or headroom is treated as exhausted.
const eps = 1e-12

// waterFill allocates need into the given hours of the output curve,
// preferring hours where baseline plus already-allocated charging load is
// lowest. Each hour accepts at most capPerHour within this call; ties are
// broken by the earliest hour so the result is deterministic. Returns the
// energy actually placed, which is less than need when the eligible hours run
// out of headroom.
func waterFill(baseline, alloc []float64, hours []int, capPerHour, need float64) float64 {
	if need <= eps || capPerHour <= eps || len(hours) == 0 {
		return 0
	}
	added := make(map[int]float64, len(hours))
	remaining := need
	for remaining > eps {
		best := -1
		bestLoad := math.Inf(1)
		for _, h := range hours {
			if capPerHour-added[h] <= eps {
				continue
			}
			load := baseline[h] + alloc[h]
			if load < bestLoad {
				bestLoad = load
				best = h
			}
		}
		if best < 0 {
			break
		}
		add := capPerHour - added[best]
		if add > remaining {
			add = remaining
		}
		alloc[best] += add
		added[best] += add
		remaining -= add
	}
	return need - remaining
}

// fillSequential allocates need into hours in their given order, adding up to
// capPerHour to each. Used by the immediate-charging strategy where vehicles
// plug in on arrival and draw full power until recharged.
func fillSequential(alloc []float64, hours []int, capPerHour, need float64) float64 {
	if need <= eps || capPerHour <= eps {
		return 0
	}
	remaining := need
	for _, h := range hours {
		if remaining <= eps {
			break
		}
		add := capPerHour
		if add > remaining {
			add = remaining
		}
		alloc[h] += add
		remaining -= add
	}
	return need - remaining
}

// windowHours expands a dwell interval into absolute hour indices. The
// interval begins at the decimal hour start of the given day and lasts dwell
// hours, possibly spilling into following days; indices beyond the horizon
// are dropped. A non-positive dwell yields no hours.
func windowHours(day int, start, dwell float64, horizon int) []int {
	if dwell <= 0 {
		return nil
	}
	first := int(math.Floor(start))
	last := int(math.Ceil(start + dwell))
	if last == first {
		last = first + 1
	}
	var hours []int
	for h := first; h < last; h++ {
		abs := day*24 + h
		if abs < 0 || abs >= horizon {
			continue
		}
		hours = append(hours, abs)
	}
	return hours
}

// mergeHours returns the sorted union of the given hour sets.
func mergeHours(sets ...[]int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, set := range sets {
		for _, h := range set {
			if !seen[h] {
				seen[h] = true
				out = append(out, h)
			}
		}
	}
	// Insertion sort; windows are short and mostly ordered.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
