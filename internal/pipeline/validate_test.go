package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanContext(t *testing.T) {
	c := NewContext("I have a headache")
	c.Symptoms = []Symptom{{Name: "headache", Location: LocationHead}}

	errs, err := c.Validate(true)
	assert.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidate_MissingRawInput(t *testing.T) {
	c := NewContext("")
	errs, err := c.Validate(true)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidContext))
	require.Len(t, errs, 1)
	assert.Equal(t, "raw_input", errs[0].Path)
	assert.Equal(t, CodeMissing, errs[0].Code)
}

func TestValidate_InvalidUTF8(t *testing.T) {
	c := NewContext(string([]byte{0xff, 0xfe}))
	errs, _ := c.Validate(false)

	require.Len(t, errs, 1)
	assert.Equal(t, CodeInvalidUTF8, errs[0].Code)
}

func TestValidate_ConfidenceOutOfRange(t *testing.T) {
	c := NewContext("text")
	c.Intent = &Intent{Type: IntentSymptomCheck, Confidence: 1.5}

	errs, err := c.Validate(true)
	require.Error(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "intent.confidence", errs[0].Path)
	assert.Equal(t, CodeOutOfRange, errs[0].Code)
}

func TestValidate_LenientRepairsUnknownLocation(t *testing.T) {
	c := NewContext("text")
	c.Symptoms = []Symptom{{Name: "ache", Location: BodyLocation("ELBOW")}}

	errs, err := c.Validate(false)
	assert.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, LocationUnspecified, c.Symptoms[0].Location)
}

func TestValidate_StrictReportsUnknownLocation(t *testing.T) {
	c := NewContext("text")
	c.Symptoms = []Symptom{{Name: "ache", Location: BodyLocation("ELBOW")}}

	errs, err := c.Validate(true)
	require.Error(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeBadEnum, errs[0].Code)
	// Strict mode must not mutate.
	assert.Equal(t, BodyLocation("ELBOW"), c.Symptoms[0].Location)
}

func TestValidate_AgeBounds(t *testing.T) {
	age := 200
	c := NewContext("text")
	c.Demographics.Age = &age

	errs, err := c.Validate(true)
	require.Error(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "demographics.age", errs[0].Path)
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Path: "p", Code: "c", Message: "m"}
	assert.Equal(t, "p: m (c)", e.Error())
}
