package scoring

import (
	"ChartBalance/internal/lexicon"
	"ChartBalance/internal/model"
)

// BonusWeight is added once for the ruler of the Ascendant's sign.
const BonusWeight = 2

// contribution builds the line item for one point, or reports false when the
// point is unresolved or its sign is not in the lexicon.
func contribution(pos model.Positions, pt model.Point, weight int) (model.Contribution, bool) {
	sign, ok := pos.Get(pt)
	if !ok {
		return model.Contribution{}, false
	}
	el, ok := lexicon.ElementOf(sign)
	if !ok {
		return model.Contribution{}, false
	}
	q, ok := lexicon.QualityOf(sign)
	if !ok {
		return model.Contribution{}, false
	}
	return model.Contribution{Point: pt, Sign: sign, Element: el, Quality: q, Weight: weight}, true
}

// Contributions lists the weighted line item of every resolved point, the
// Ascendant included, in scoring order. Both the element scorer and the
// weighted quality scorer are built on this list.
func Contributions(pos model.Positions) []model.Contribution {
	out := make([]model.Contribution, 0, len(model.Points))
	for _, pt := range model.Points {
		if c, ok := contribution(pos, pt, pt.Weight()); ok {
			out = append(out, c)
		}
	}
	return out
}

// RulerBonus resolves Ascendant sign -> classical ruler -> ruler's own sign.
// The bonus feeds the categories of the ruler's sign, not the Ascendant's.
// It only exists when every link of that chain is resolved.
func RulerBonus(pos model.Positions) (model.Contribution, bool) {
	asc, ok := pos.Get(model.Ascendant)
	if !ok {
		return model.Contribution{}, false
	}
	ruler, ok := lexicon.RulerOf(asc)
	if !ok {
		return model.Contribution{}, false
	}
	c, ok := contribution(pos, ruler, BonusWeight)
	if !ok {
		return model.Contribution{}, false
	}
	c.Bonus = true
	return c, true
}

// ScoreElements adds each resolved point's weight to the element of its sign,
// plus the rulership bonus.
func ScoreElements(pos model.Positions) model.ElementScores {
	scores := make(model.ElementScores, len(model.Elements))
	for _, e := range model.Elements {
		scores[e] = 0
	}
	for _, c := range Contributions(pos) {
		scores[c.Element] += c.Weight
	}
	if b, ok := RulerBonus(pos); ok {
		scores[b.Element] += b.Weight
	}
	return scores
}

// WeighQualities is the weighted quality variant: all eight points at their
// weights plus the rulership bonus on the quality of the ruler's sign.
func WeighQualities(pos model.Positions) model.QualityScores {
	scores := emptyQualities()
	for _, c := range Contributions(pos) {
		scores[c.Quality] += c.Weight
	}
	if b, ok := RulerBonus(pos); ok {
		scores[b.Quality] += b.Weight
	}
	return scores
}

// CountQualities is the count variant: one per resolved planet, the
// Ascendant never counted and no bonus.
func CountQualities(pos model.Positions) model.QualityScores {
	scores := emptyQualities()
	for _, pt := range model.Planets {
		if c, ok := contribution(pos, pt, 1); ok {
			scores[c.Quality] += c.Weight
		}
	}
	return scores
}

func emptyQualities() model.QualityScores {
	scores := make(model.QualityScores, len(model.Qualities))
	for _, q := range model.Qualities {
		scores[q] = 0
	}
	return scores
}
