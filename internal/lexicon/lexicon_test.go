package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ChartBalance/internal/model"
)

func TestElementOf_AllSigns(t *testing.T) {
	tests := []struct {
		sign model.Sign
		want model.Element
	}{
		{model.Aries, model.Fire},
		{model.Taurus, model.Earth},
		{model.Gemini, model.Air},
		{model.Cancer, model.Water},
		{model.Leo, model.Fire},
		{model.Virgo, model.Earth},
		{model.Libra, model.Air},
		{model.Scorpio, model.Water},
		{model.Sagittarius, model.Fire},
		{model.Capricorn, model.Earth},
		{model.Aquarius, model.Air},
		{model.Pisces, model.Water},
	}
	for _, tt := range tests {
		got, ok := ElementOf(tt.sign)
		require.True(t, ok, tt.sign)
		assert.Equal(t, tt.want, got, tt.sign)
	}
}

func TestQualityOf_AllSigns(t *testing.T) {
	tests := []struct {
		sign model.Sign
		want model.Quality
	}{
		{model.Aries, model.Cardinal},
		{model.Taurus, model.Fixed},
		{model.Gemini, model.Mutable},
		{model.Cancer, model.Cardinal},
		{model.Leo, model.Fixed},
		{model.Virgo, model.Mutable},
		{model.Libra, model.Cardinal},
		{model.Scorpio, model.Fixed},
		{model.Sagittarius, model.Mutable},
		{model.Capricorn, model.Cardinal},
		{model.Aquarius, model.Fixed},
		{model.Pisces, model.Mutable},
	}
	for _, tt := range tests {
		got, ok := QualityOf(tt.sign)
		require.True(t, ok, tt.sign)
		assert.Equal(t, tt.want, got, tt.sign)
	}
}

func TestPartitions_CompleteAndDisjoint(t *testing.T) {
	byElement := map[model.Element]int{}
	byQuality := map[model.Quality]int{}
	for _, s := range model.Signs {
		e, ok := ElementOf(s)
		require.True(t, ok)
		q, ok := QualityOf(s)
		require.True(t, ok)
		byElement[e]++
		byQuality[q]++
	}
	require.Len(t, byElement, 4)
	require.Len(t, byQuality, 3)
	for _, e := range model.Elements {
		assert.Equal(t, 3, byElement[e], e)
	}
	for _, q := range model.Qualities {
		assert.Equal(t, 4, byQuality[q], q)
	}
}

func TestRulerOf_ClassicalNonAngle(t *testing.T) {
	tests := []struct {
		sign model.Sign
		want model.Point
	}{
		{model.Aries, model.Mars},
		{model.Taurus, model.Venus},
		{model.Gemini, model.Mercury},
		{model.Cancer, model.Moon},
		{model.Leo, model.Sun},
		{model.Virgo, model.Mercury},
		{model.Libra, model.Venus},
		{model.Scorpio, model.Mars},
		{model.Sagittarius, model.Jupiter},
		{model.Capricorn, model.Saturn},
		{model.Aquarius, model.Saturn},
		{model.Pisces, model.Jupiter},
	}
	for _, tt := range tests {
		got, ok := RulerOf(tt.sign)
		require.True(t, ok, tt.sign)
		assert.Equal(t, tt.want, got, tt.sign)
		assert.False(t, got.IsAngle())
		assert.Contains(t, model.Planets[:], got)
	}
}

func TestUnknownSign_IsAbsent(t *testing.T) {
	_, ok := ElementOf("Ophiuchus")
	assert.False(t, ok)
	_, ok = QualityOf("Ophiuchus")
	assert.False(t, ok)
	_, ok = RulerOf("")
	assert.False(t, ok)
}

func TestParseSign(t *testing.T) {
	s, ok := ParseSign("  sagittarius ")
	require.True(t, ok)
	assert.Equal(t, model.Sagittarius, s)

	_, ok = ParseSign("Sagittar")
	assert.False(t, ok)
}
