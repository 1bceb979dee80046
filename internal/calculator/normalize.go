package calculator

import "math"

// NormalizeTo100 converts raw category values into percentages that sum to
// exactly 100. Every category except the last in order gets its own share
// rounded to one decimal; the last absorbs whatever is left.
//
// Negative values count as zero. When nothing positive remains every category
// reports 0. Categories missing from raw count as zero; keys of raw that are
// not listed in order are ignored.
//
// The last category is the exact remainder, so when the rounded shares before
// it overshoot 100 it can come out slightly negative: {3336, 3336, 3326, 2}
// yields {33.4, 33.4, 33.3, -0.1}. Callers that need non-negative display
// values must clamp themselves.
func NormalizeTo100[K comparable](order []K, raw map[K]float64) map[K]float64 {
	out := make(map[K]float64, len(order))
	total := 0.0
	for _, k := range order {
		out[k] = 0
		if v := raw[k]; v > 0 {
			total += v
		}
	}
	if total <= 0 || len(order) == 0 {
		return out
	}

	assigned := 0.0
	for i, k := range order {
		if i == len(order)-1 {
			out[k] = round1(100 - assigned)
			break
		}
		v := math.Max(raw[k], 0)
		out[k] = round1(v / total * 100)
		assigned += out[k]
	}
	return out
}

// IntShares is NormalizeTo100 over integer scores.
func IntShares[K comparable](order []K, scores map[K]int) map[K]float64 {
	raw := make(map[K]float64, len(scores))
	for k, v := range scores {
		raw[k] = float64(v)
	}
	return NormalizeTo100(order, raw)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
