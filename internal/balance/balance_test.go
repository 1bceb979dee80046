package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ChartBalance/internal/model"
)

func TestElementLevel_Bands(t *testing.T) {
	tests := []struct {
		pct  float64
		want model.Level
	}{
		{0, model.LevelAbsent},
		{0.5, model.LevelLow},
		{22.99, model.LevelLow},
		{23, model.LevelBalanced},
		{25, model.LevelBalanced},
		{28, model.LevelBalanced},
		{28.01, model.LevelHigh},
		{100, model.LevelHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ElementLevel(tt.pct), "pct %.2f", tt.pct)
	}
}

func TestDominant_TiesKeepAll(t *testing.T) {
	got := Dominant(map[model.Quality]float64{
		model.Cardinal: 40,
		model.Fixed:    40,
		model.Mutable:  20,
	})
	assert.Equal(t, []model.Quality{model.Cardinal, model.Fixed}, got)
}

func TestDominant_NothingResolved(t *testing.T) {
	assert.Nil(t, Dominant(map[model.Quality]float64{}))
}

func TestClassify(t *testing.T) {
	b := Classify(
		map[model.Element]float64{model.Fire: 25, model.Earth: 25, model.Air: 25, model.Water: 25},
		map[model.Quality]float64{model.Cardinal: 20, model.Fixed: 30, model.Mutable: 50},
	)
	assert.True(t, b.Balanced)
	assert.Equal(t, []model.Quality{model.Mutable}, b.Dominant)

	b = Classify(
		map[model.Element]float64{model.Fire: 33.33, model.Earth: 18.52, model.Air: 25.93, model.Water: 22.22},
		nil,
	)
	assert.False(t, b.Balanced)
	assert.Equal(t, model.LevelHigh, b.Elements[model.Fire])
	assert.Equal(t, model.LevelLow, b.Elements[model.Earth])
	assert.Equal(t, model.LevelBalanced, b.Elements[model.Air])
	assert.Equal(t, model.LevelLow, b.Elements[model.Water])
	assert.Nil(t, b.Dominant)
}
