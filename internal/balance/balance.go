// Package balance classifies element and quality shares the way the report
// narrative consumes them.
package balance

import "ChartBalance/internal/model"

// Band edges, in percent of the element total.
const (
	HighAbove = 28.0
	LowBelow  = 23.0
)

// ElementLevel maps an element share to its level. A share of zero means the
// element is missing from the chart and gets no narrative at all.
func ElementLevel(pct float64) model.Level {
	switch {
	case pct <= 0:
		return model.LevelAbsent
	case pct > HighAbove:
		return model.LevelHigh
	case pct < LowBelow:
		return model.LevelLow
	default:
		return model.LevelBalanced
	}
}

// Dominant returns every quality tied at the highest share, in report order.
// Nothing is dominant when every share is zero.
func Dominant(shares map[model.Quality]float64) []model.Quality {
	highest := 0.0
	for _, q := range model.Qualities {
		if shares[q] > highest {
			highest = shares[q]
		}
	}
	if highest <= 0 {
		return nil
	}
	var out []model.Quality
	for _, q := range model.Qualities {
		if shares[q] == highest {
			out = append(out, q)
		}
	}
	return out
}

// Classify builds the balance summary of an assessment.
func Classify(elements map[model.Element]float64, qualities map[model.Quality]float64) model.Balance {
	b := model.Balance{
		Elements: make(map[model.Element]model.Level, len(model.Elements)),
		Dominant: Dominant(qualities),
		Balanced: true,
	}
	for _, e := range model.Elements {
		lvl := ElementLevel(elements[e])
		b.Elements[e] = lvl
		if lvl != model.LevelBalanced {
			b.Balanced = false
		}
	}
	return b
}
