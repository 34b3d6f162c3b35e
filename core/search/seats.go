package search

import "math"

// ClosestSeatCount snaps an average seat count to the discrete catalog of
// offered sizes. The catalog must be sorted ascending. Exact midpoints
// resolve to the first candidate in catalog order, i.e. the smaller value
// wins ties; the strict comparison below preserves that exactly.
func ClosestSeatCount(avg float64, catalog []int) int {
	best := catalog[0]
	bestDist := math.Abs(avg - float64(best))
	for _, c := range catalog[1:] {
		if d := math.Abs(avg - float64(c)); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
