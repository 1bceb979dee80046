package model

import "time"

// ElementScores holds the accumulated weight per element.
type ElementScores map[Element]int

// QualityScores holds the accumulated weight (or count) per quality.
type QualityScores map[Quality]int

// ElementPercentages maps each element to its share of the element total.
type ElementPercentages map[Element]float64

// QualityPercentages maps each quality to its share of the quality total.
type QualityPercentages map[Quality]float64

// Contribution is a single scoring line item: one resolved point, or the
// rulership bonus, feeding one element and one quality bucket.
type Contribution struct {
	Point   Point   `json:"point"`
	Sign    Sign    `json:"sign"`
	Element Element `json:"element"`
	Quality Quality `json:"quality"`
	Weight  int     `json:"weight"`
	Bonus   bool    `json:"bonus,omitempty"`
}

// Level classifies an element share relative to the balanced band.
type Level string

const (
	LevelAbsent   Level = "ABSENT"
	LevelLow      Level = "LOW"
	LevelBalanced Level = "BALANCED"
	LevelHigh     Level = "HIGH"
)

// Balance summarizes which categories are out of the balanced band.
type Balance struct {
	Elements map[Element]Level `json:"elements"`
	Dominant []Quality         `json:"dominant_qualities"`
	Balanced bool              `json:"balanced"`
}

// Assessment is the full output of one parse-and-score cycle.
type Assessment struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
	Positions  Positions `json:"positions"`
	Unresolved []Point   `json:"unresolved,omitempty"`

	ElementScores      ElementScores      `json:"element_scores"`
	ElementPercentages ElementPercentages `json:"element_percentages"`

	// Weighted variant: all eight points plus the rulership bonus.
	QualityScores      QualityScores      `json:"quality_scores"`
	QualityPercentages QualityPercentages `json:"quality_percentages"`

	// Count variant: the seven planets only, one each.
	QualityCounts           QualityScores      `json:"quality_counts"`
	QualityCountPercentages QualityPercentages `json:"quality_count_percentages"`

	Contributions []Contribution `json:"contributions"`
	RulerBonus    *Contribution  `json:"ruler_bonus,omitempty"`
	Balance       Balance        `json:"balance"`
}

// ElementTotal sums the element scores.
func (a *Assessment) ElementTotal() int {
	total := 0
	for _, v := range a.ElementScores {
		total += v
	}
	return total
}

// AssessmentSummary is the compact listing form of a stored assessment.
type AssessmentSummary struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Resolved  int       `json:"resolved"`
	Fire      int       `json:"fire"`
	Earth     int       `json:"earth"`
	Air       int       `json:"air"`
	Water     int       `json:"water"`
}
