package market

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultOutlierThreshold is deliberately large: price spikes can be
// legitimate, and the filter exists to drop data-entry pathologies, not to
// smooth normal volatility.
const DefaultOutlierThreshold = 10.0

// RejectOutliers removes statistical outliers from values using the median
// absolute deviation. It returns the surviving values in their original
// order together with their original indices, so callers can realign a
// parallel sequence.
//
// A deviation median of zero means most values sit exactly on the median;
// those are kept and anything off the median is rejected. Empty input
// yields empty output.
func RejectOutliers(values []float64, threshold float64) (filtered []float64, kept []int) {
	if threshold <= 0 {
		threshold = DefaultOutlierThreshold
	}
	if len(values) == 0 {
		return []float64{}, []int{}
	}

	med := median(values)

	devs := make([]float64, len(values))
	for i, v := range values {
		devs[i] = math.Abs(v - med)
	}
	mdev := median(devs)

	filtered = make([]float64, 0, len(values))
	kept = make([]int, 0, len(values))
	for i, d := range devs {
		if mdev == 0 {
			if d == 0 {
				filtered = append(filtered, values[i])
				kept = append(kept, i)
			}
			continue
		}
		if d/mdev < threshold {
			filtered = append(filtered, values[i])
			kept = append(kept, i)
		}
	}

	return filtered, kept
}

// rejectObservations filters observations by price, keeping the timestamp
// and price of each survivor paired structurally rather than through two
// separately filtered arrays.
func rejectObservations(obs []PriceObservation, threshold float64) []PriceObservation {
	values := make([]float64, len(obs))
	for i, o := range obs {
		values[i] = float64(o.Price)
	}

	_, kept := RejectOutliers(values, threshold)

	out := make([]PriceObservation, len(kept))
	for i, idx := range kept {
		out[i] = obs[idx]
	}
	return out
}

// median returns the conventional median: the middle element of the sorted
// values, or the mean of the two middle elements for an even count.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return stat.Mean(sorted[n/2-1:n/2+1], nil)
}
