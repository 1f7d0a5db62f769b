package detectors

import (
	"regexp"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// NewCardiac builds the cardiovascular detector. Suspected acute
// coronary presentations are always EMERGENCY; rhythm and failure
// presentations start URGENT and escalate on modifiers.
func NewCardiac() *ruleDetector {
	return &ruleDetector{
		name: "cardiac",
		rules: []conditionRule{
			{
				condition: "suspected acute coronary syndrome",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`chest (?:pain|pressure|tightness).{0,80}(?:arm|jaw|shoulder|sweat|nause|short(?:ness)? of breath)`),
					regexp.MustCompile(`(?:crushing|squeezing|elephant on) (?:my )?chest`),
					regexp.MustCompile(`(?:arm|jaw).{0,40}chest (?:pain|pressure)`),
				},
				symptomKeywords:    []string{"chest pain", "chest pressure", "chest tightness", "cold sweat", "shortness of breath"},
				riskFactorKeywords: []string{"smoker", "diabetes", "high blood pressure", "high cholesterol", "heart disease", "previous heart attack"},
				threshold:          2,
				baseUrgency:        pipeline.LevelEmergency,
				complications:      []string{"myocardial infarction", "cardiac arrest"},
				followUp: []string{
					"Does the pain spread to your arm, jaw, or back?",
					"Are you sweating or feeling nauseous with the pain?",
				},
			},
			{
				condition: "arrhythmia",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`heart (?:racing|pounding|fluttering|skipping)`),
					regexp.MustCompile(`palpitations?`),
					regexp.MustCompile(`irregular heart\s?beat`),
				},
				symptomKeywords:    []string{"palpitations", "racing heart", "skipped beats", "fluttering"},
				riskFactorKeywords: []string{"caffeine", "thyroid", "atrial fibrillation", "heart disease"},
				urgencyModifiers:   []string{"fainted", "passed out", "chest pain", "lightheaded"},
				threshold:          1,
				baseUrgency:        pipeline.LevelUrgent,
				complications:      []string{"syncope", "stroke risk with atrial fibrillation"},
				followUp: []string{
					"How long do the palpitations last?",
					"Have you fainted or nearly fainted with them?",
				},
			},
			{
				condition: "possible heart failure",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?:short of breath|breathless).{0,60}(?:lying down|lying flat|at night)`),
					regexp.MustCompile(`(?:swollen|swelling).{0,30}(?:ankles?|legs?|feet).{0,80}(?:short of breath|breathless|tired)`),
					regexp.MustCompile(`wake up gasping`),
				},
				symptomKeywords:    []string{"swollen ankles", "swollen legs", "short of breath lying down", "sudden weight gain"},
				riskFactorKeywords: []string{"heart failure", "heart disease", "high blood pressure"},
				threshold:          2,
				baseUrgency:        pipeline.LevelUrgent,
				complications:      []string{"pulmonary edema"},
				followUp: []string{
					"How many pillows do you need to sleep comfortably?",
					"Have you gained weight quickly over the past week?",
				},
			},
		},
		redFlags: []string{
			"crushing chest", "chest pain spreading", "cold sweat and chest",
			"heart attack",
		},
	}
}
