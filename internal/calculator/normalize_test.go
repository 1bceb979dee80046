package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var abc = []string{"a", "b", "c"}

func total(m map[string]float64) float64 {
	s := 0.0
	for _, v := range m {
		s += v
	}
	return s
}

func TestNormalizeTo100_RemainderGoesToLast(t *testing.T) {
	got := NormalizeTo100(abc, map[string]float64{"a": 1, "b": 1, "c": 1})
	assert.Equal(t, map[string]float64{"a": 33.3, "b": 33.3, "c": 33.4}, got)
	assert.InDelta(t, 100.0, total(got), 1e-9)
}

func TestNormalizeTo100_OrderDecidesWhoAbsorbs(t *testing.T) {
	got := NormalizeTo100([]string{"c", "b", "a"}, map[string]float64{"a": 1, "b": 1, "c": 1})
	assert.Equal(t, 33.4, got["a"])
	assert.Equal(t, 33.3, got["c"])
}

func TestNormalizeTo100_SumsToHundred(t *testing.T) {
	inputs := []map[string]float64{
		{"a": 9, "b": 6, "c": 5},
		{"a": 7, "b": 7, "c": 13},
		{"a": 0.1, "b": 0.2, "c": 1000},
		{"a": 2, "b": 0, "c": 0},
	}
	for _, in := range inputs {
		got := NormalizeTo100(abc, in)
		assert.InDelta(t, 100.0, total(got), 1e-9, "%v", in)
		for _, v := range got {
			assert.Equal(t, v, math.Round(v*10)/10, "one decimal")
		}
	}
}

func TestNormalizeTo100_Degenerate(t *testing.T) {
	zeros := map[string]float64{"a": 0, "b": 0, "c": 0}
	assert.Equal(t, zeros, NormalizeTo100(abc, map[string]float64{}))
	assert.Equal(t, zeros, NormalizeTo100(abc, map[string]float64{"a": -1, "b": 0, "c": -5}))
	assert.Empty(t, NormalizeTo100([]string{}, map[string]float64{"a": 1}))
}

func TestNormalizeTo100_NegativeCountsAsZero(t *testing.T) {
	got := NormalizeTo100(abc, map[string]float64{"a": -10, "b": 1, "c": 1})
	assert.Equal(t, map[string]float64{"a": 0, "b": 50, "c": 50}, got)
}

func TestIntShares(t *testing.T) {
	got := IntShares(abc, map[string]int{"a": 9, "b": 6, "c": 12})
	assert.Equal(t, map[string]float64{"a": 33.3, "b": 22.2, "c": 44.5}, got)
}

func TestNormalizeTo100_RemainderCanGoNegative(t *testing.T) {
	got := NormalizeTo100([]string{"a", "b", "c", "d"},
		map[string]float64{"a": 3336, "b": 3336, "c": 3326, "d": 2})

	assert.Equal(t, 33.4, got["a"])
	assert.Equal(t, 33.4, got["b"])
	assert.Equal(t, 33.3, got["c"])
	assert.Equal(t, -0.1, got["d"])
	assert.InDelta(t, 100.0, total(got), 1e-9)
}
