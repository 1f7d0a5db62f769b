package textscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegationPredicate_BasicNegation(t *testing.T) {
	negated := NegationPredicate("I don't have a fever but I do have chills")

	assert.True(t, negated("fever"), "fever should be negated by don't")
	assert.False(t, negated("chills"), "chills should not be negated")
}

func TestNegationPredicate_Tokens(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"no", "no chest pain today", true},
		{"not", "it is not a headache", true},
		{"without", "three days without nausea", true},
		{"never", "I never get dizziness", true},
		{"plain", "I have a headache", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			phrase := ""
			switch tc.name {
			case "no":
				phrase = "chest pain"
			case "not":
				phrase = "headache"
			case "without":
				phrase = "nausea"
			case "never":
				phrase = "dizziness"
			case "plain":
				phrase = "headache"
			}
			negated := NegationPredicate(tc.text)
			assert.Equal(t, tc.want, negated(phrase))
		})
	}
}

func TestNegationPredicate_AbsentPhrase(t *testing.T) {
	negated := NegationPredicate("I have a headache")
	assert.False(t, negated("fever"), "absent phrase is never negated")
}

func TestNegationPredicate_WindowLimit(t *testing.T) {
	// The negation token sits outside the default window, so the phrase
	// should read as not negated.
	text := "no it was a long time ago that the pain in my shoulder started"
	negated := NegationPredicate(text)
	assert.False(t, negated("shoulder"))

	// A generous window picks the token up again.
	wide := NegationPredicate(text,
		WithNegationWindowWords(20),
		WithNegationWindowChars(200),
	)
	assert.True(t, wide("shoulder"))
}

func TestNegationPredicate_EmptyInputs(t *testing.T) {
	negated := NegationPredicate("")
	assert.False(t, negated("fever"))
	assert.False(t, negated(""))
}

func TestNegationPredicate_CaseInsensitive(t *testing.T) {
	negated := NegationPredicate("No FEVER at all")
	assert.True(t, negated("Fever"))
}
