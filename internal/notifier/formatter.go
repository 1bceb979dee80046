package notifier

import (
	"fmt"
	"html"
	"strings"

	"ChartBalance/internal/calculator"
	"ChartBalance/internal/model"
)

var levelLabels = map[model.Level]string{
	model.LevelAbsent:   "absent",
	model.LevelLow:      "low",
	model.LevelBalanced: "balanced",
	model.LevelHigh:     "high",
}

// FormatAssessment renders an assessment as an HTML Telegram message. Shares
// shown to the reader are normalized to add up to exactly 100. Free-form
// fields are HTML-escaped.
func FormatAssessment(a *model.Assessment) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔭 <b>Chart balance</b> | %s\n", html.EscapeString(a.Source)))
	b.WriteString(fmt.Sprintf("%s | %s\n\n", a.CreatedAt.Format("2006-01-02 15:04"), html.EscapeString(a.ID)))

	b.WriteString("<b>Positions:</b>\n")
	for _, pt := range model.Points {
		if s, ok := a.Positions.Get(pt); ok {
			b.WriteString(fmt.Sprintf("  %-9s %s\n", pt, s))
		} else {
			b.WriteString(fmt.Sprintf("  %-9s —\n", pt))
		}
	}

	elemShares := calculator.IntShares(model.Elements, a.ElementScores)
	b.WriteString("\n<b>Elements:</b>\n")
	for _, e := range model.Elements {
		b.WriteString(fmt.Sprintf("  %-6s %2d pts  %5.1f%%  %s\n",
			e, a.ElementScores[e], elemShares[e], levelLabels[a.Balance.Elements[e]]))
	}

	qualShares := calculator.IntShares(model.Qualities, a.QualityCounts)
	b.WriteString("\n<b>Qualities (planets):</b>\n")
	for _, q := range model.Qualities {
		b.WriteString(fmt.Sprintf("  %-8s %d planets  %5.1f%%  (weighted %d pts)\n",
			q, a.QualityCounts[q], qualShares[q], a.QualityScores[q]))
	}

	if a.RulerBonus != nil {
		b.WriteString(fmt.Sprintf("\nRuler bonus: %s in %s (+%d %s, +%d %s)\n",
			a.RulerBonus.Point, a.RulerBonus.Sign,
			a.RulerBonus.Weight, a.RulerBonus.Element,
			a.RulerBonus.Weight, a.RulerBonus.Quality))
	}
	if len(a.Balance.Dominant) > 0 {
		names := make([]string, len(a.Balance.Dominant))
		for i, q := range a.Balance.Dominant {
			names[i] = string(q)
		}
		b.WriteString(fmt.Sprintf("Dominant: %s\n", strings.Join(names, ", ")))
	}
	if len(a.Unresolved) > 0 {
		names := make([]string, len(a.Unresolved))
		for i, pt := range a.Unresolved {
			names[i] = string(pt)
		}
		b.WriteString(fmt.Sprintf("\n⚠️ Unresolved: %s\n", strings.Join(names, ", ")))
	}

	return b.String()
}
