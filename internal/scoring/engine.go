// Package scoring turns resolved chart positions into weighted element and
// quality distributions.
package scoring

import (
	"math"

	"ChartBalance/internal/balance"
	"ChartBalance/internal/model"
)

// Percentages converts a score family into shares of its own total, each
// rounded to two decimals on its own. A zero total yields all zeros.
//
// The shares are not forced to sum to 100; see calculator.NormalizeTo100 for
// that.
func Percentages[K comparable](scores map[K]int) map[K]float64 {
	total := 0
	for _, v := range scores {
		total += v
	}
	out := make(map[K]float64, len(scores))
	for k, v := range scores {
		if total <= 0 {
			out[k] = 0
			continue
		}
		out[k] = round2(float64(v) / float64(total) * 100)
	}
	return out
}

// Evaluate computes the full assessment of pos. ID, source and timestamp are
// left for the caller.
func Evaluate(pos model.Positions) *model.Assessment {
	elements := ScoreElements(pos)
	weighted := WeighQualities(pos)
	counts := CountQualities(pos)

	a := &model.Assessment{
		Positions:  pos,
		Unresolved: pos.Unresolved(),

		ElementScores:      elements,
		ElementPercentages: Percentages(elements),

		QualityScores:      weighted,
		QualityPercentages: Percentages(weighted),

		QualityCounts:           counts,
		QualityCountPercentages: Percentages(counts),

		Contributions: Contributions(pos),
	}
	if b, ok := RulerBonus(pos); ok {
		a.RulerBonus = &b
	}
	// Modality narrative follows the planet count; the Ascendant and the
	// ruler bonus only shape the weighted variant.
	a.Balance = balance.Classify(a.ElementPercentages, a.QualityCountPercentages)
	return a
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
