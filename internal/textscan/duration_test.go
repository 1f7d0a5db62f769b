package textscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration_NumericUnit(t *testing.T) {
	d := ParseDuration("I've had a headache for 3 days")
	require.NotNil(t, d)
	require.NotNil(t, d.Value)
	assert.Equal(t, 3.0, *d.Value)
	assert.Equal(t, "day", d.Unit)
	assert.Equal(t, "3 days", d.Raw)
}

func TestParseDuration_SingularAndAliases(t *testing.T) {
	d := ParseDuration("the pain started 1 hr ago")
	require.NotNil(t, d)
	require.NotNil(t, d.Value)
	assert.Equal(t, 1.0, *d.Value)
	assert.Equal(t, "hour", d.Unit)
}

func TestParseDuration_SpelledOut(t *testing.T) {
	d := ParseDuration("coughing for a few days now")
	require.NotNil(t, d)
	require.NotNil(t, d.Value)
	assert.Equal(t, 3.0, *d.Value)
	assert.Equal(t, "day", d.Unit)
}

func TestParseDuration_Relative(t *testing.T) {
	d := ParseDuration("feeling dizzy since yesterday")
	require.NotNil(t, d)
	require.NotNil(t, d.Value)
	assert.Equal(t, 1.0, *d.Value)
	assert.Equal(t, "day", d.Unit)
	assert.Equal(t, "since yesterday", d.Raw)
}

func TestParseDuration_Vague(t *testing.T) {
	d := ParseDuration("this has been an ongoing problem")
	require.NotNil(t, d)
	assert.Nil(t, d.Value, "vague durations carry no numeric value")
	assert.Equal(t, "ongoing", d.Unit)
}

func TestParseDuration_FirstMatchWins(t *testing.T) {
	// Numeric pattern outranks the vague pattern even when the vague
	// phrase appears first in the text.
	d := ParseDuration("chronic back pain, bad for 2 weeks")
	require.NotNil(t, d)
	require.NotNil(t, d.Value)
	assert.Equal(t, 2.0, *d.Value)
	assert.Equal(t, "week", d.Unit)
}

func TestParseDuration_NoMatch(t *testing.T) {
	assert.Nil(t, ParseDuration("my stomach hurts"))
	assert.Nil(t, ParseDuration(""))
}
