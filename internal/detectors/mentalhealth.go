package detectors

import (
	"regexp"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// NewMentalHealth builds the mental-health detector. Its red flags are
// the pipeline's most safety-critical: any suicidal-ideation phrasing
// forces EMERGENCY, and self-harm phrasing is never below URGENT.
func NewMentalHealth() *ruleDetector {
	return &ruleDetector{
		name: "mentalhealth",
		rules: []conditionRule{
			{
				condition: "suicidal ideation",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`suicid`),
					regexp.MustCompile(`kill(?:ing)? myself`),
					regexp.MustCompile(`end(?:ing)? my life`),
					regexp.MustCompile(`better off dead`),
					regexp.MustCompile(`don'?t want to (?:live|be alive|wake up)`),
				},
				threshold:     1,
				baseUrgency:   pipeline.LevelEmergency,
				complications: []string{"immediate safety risk"},
				followUp: []string{
					"Are you safe right now?",
					"Is someone with you who can help?",
				},
			},
			{
				condition: "self-harm",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`hurt(?:ing)? myself`),
					regexp.MustCompile(`self[- ]harm`),
					regexp.MustCompile(`cut(?:ting)? myself`),
				},
				threshold:     1,
				baseUrgency:   pipeline.LevelUrgent,
				complications: []string{"escalation risk"},
				followUp: []string{
					"Are you safe right now?",
					"Do you have thoughts of hurting yourself again?",
				},
			},
			{
				condition: "panic attack",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`panic attack`),
					regexp.MustCompile(`(?:heart (?:racing|pounding)|can'?t breathe).{0,80}(?:afraid|scared|panic|dying|doom)`),
				},
				symptomKeywords:  []string{"heart racing", "sweating", "shaking", "sense of doom", "tingling"},
				threshold:        2,
				baseUrgency:      pipeline.LevelUrgent,
				urgencyModifiers: []string{"chest pain", "fainted"},
				complications:    []string{"mimics cardiac presentation"},
				followUp: []string{
					"Have you had episodes like this before?",
					"How long did the episode last?",
				},
			},
			{
				condition: "possible depression",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?:feel(?:ing)? )?hopeless`),
					regexp.MustCompile(`no (?:interest|joy|pleasure) in`),
					regexp.MustCompile(`can'?t (?:sleep|eat|get out of bed)`),
				},
				symptomKeywords:  []string{"hopeless", "worthless", "no energy", "can't sleep", "no appetite", "crying"},
				threshold:        2,
				baseUrgency:      pipeline.LevelNonUrgent,
				urgencyModifiers: []string{"getting worse", "every day", "weeks"},
				complications:    []string{"progression to crisis"},
				followUp: []string{
					"How long have you been feeling this way?",
					"Have you had any thoughts of harming yourself?",
				},
			},
		},
		redFlags: []string{
			"suicidal", "kill myself", "end my life", "better off dead",
			"want to die",
		},
	}
}
