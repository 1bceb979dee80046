package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint(t *testing.T) {
	for _, pt := range Points {
		got, ok := ParsePoint(" " + pt.Label() + " ")
		require.True(t, ok, pt)
		assert.Equal(t, pt, got)
	}
	_, ok := ParsePoint("Pluto")
	assert.False(t, ok)
}

func TestPositions_JSONEmitsEveryPoint(t *testing.T) {
	data, err := json.Marshal(Positions{Sun: Leo})
	require.NoError(t, err)

	var raw map[string]*string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, len(Points))
	require.NotNil(t, raw["Sun"])
	assert.Equal(t, "Leo", *raw["Sun"])
	assert.Nil(t, raw["Saturn"])

	var back Positions
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Positions{Sun: Leo}, back)
}
