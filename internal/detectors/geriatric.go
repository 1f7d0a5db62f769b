package detectors

import (
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// Geriatric detects conditions whose risk profile changes sharply with
// advanced age: falls, acute confusion, and medication interactions.
type Geriatric struct {
	ruleDetector
	bracketUrgency map[string]map[ageBracket]pipeline.TriageLevel
}

// NewGeriatric builds the geriatric rule table.
func NewGeriatric() *Geriatric {
	return &Geriatric{
		ruleDetector: ruleDetector{
			name: "geriatric",
			rules: []conditionRule{
				{
					condition: "fall",
					patterns: []*regexp.Regexp{
						regexp.MustCompile(`(?:fell|had a fall|fall(?:en|ing)?) (?:down|over|in the|at home|last)`),
						regexp.MustCompile(`found (?:him|her|them) on the floor`),
					},
					symptomKeywords:    []string{"fell", "slipped", "lost balance", "on the floor"},
					riskFactorKeywords: []string{"blood thinner", "warfarin", "osteoporosis", "walker", "cane"},
					urgencyModifiers:   []string{"hit my head", "hit her head", "hit his head", "can't get up", "hip"},
					threshold:          1,
					baseUrgency:        pipeline.LevelUrgent,
					complications:      []string{"hip fracture", "intracranial bleeding"},
					followUp: []string{
						"Did they hit their head during the fall?",
						"Are they taking any blood thinners?",
						"Can they bear weight and walk?",
					},
				},
				{
					condition: "acute confusion",
					patterns: []*regexp.Regexp{
						regexp.MustCompile(`sudden(?:ly)? (?:confused|confusion|disoriented)`),
						regexp.MustCompile(`(?:more|very) confused (?:than|this|today|lately)`),
						regexp.MustCompile(`doesn'?t recognize`),
					},
					symptomKeywords:    []string{"confused", "disoriented", "not making sense", "agitated"},
					riskFactorKeywords: []string{"dementia", "uti", "urinary tract infection", "new medication"},
					threshold:          2,
					baseUrgency:        pipeline.LevelUrgent,
					complications:      []string{"delirium", "underlying infection"},
					followUp: []string{
						"When did the confusion start?",
						"Any recent medication changes or signs of infection?",
					},
				},
				{
					condition: "medication interaction",
					patterns: []*regexp.Regexp{
						regexp.MustCompile(`(?:dizzy|drowsy|faint).{0,60}(?:new|started).{0,30}(?:medication|medicine|pill)`),
						regexp.MustCompile(`(?:new|started).{0,30}(?:medication|medicine|pill).{0,60}(?:dizzy|drowsy|faint)`),
					},
					symptomKeywords:    []string{"dizzy", "drowsy", "faint", "unsteady"},
					riskFactorKeywords: []string{"blood pressure medication", "sedative", "multiple medications", "blood thinner"},
					threshold:          2,
					baseUrgency:        pipeline.LevelNonUrgent,
					complications:      []string{"fall risk", "hypotension"},
					followUp: []string{
						"What medications were started or changed recently?",
					},
				},
			},
			redFlags: []string{
				"can't wake", "cannot wake", "unresponsive", "slurred speech",
				"face drooping", "one side of", "stroke",
			},
		},
		bracketUrgency: map[string]map[ageBracket]pipeline.TriageLevel{
			"fall": {
				bracketSenior:  pipeline.LevelUrgent,
				bracketElderly: pipeline.LevelEmergency,
			},
			"acute confusion": {
				bracketSenior:  pipeline.LevelUrgent,
				bracketElderly: pipeline.LevelUrgent,
			},
			"medication interaction": {
				bracketSenior:  pipeline.LevelUrgent,
				bracketElderly: pipeline.LevelUrgent,
			},
		},
	}
}

// Detect mirrors the pediatric flow on the other end of the age range:
// resolve the bracket, evaluate rules, apply per-bracket urgency, and
// let red flags force EMERGENCY. Resolved pediatric ages suppress it.
func (d *Geriatric) Detect(text string, hint *pipeline.Demographics) pipeline.Match {
	lower := strings.ToLower(text)
	if len(lower) > maxInputLength {
		lower = lower[:maxInputLength]
	}

	age := resolveAge(lower, hint)
	bracket := bracketFor(age)
	switch bracket {
	case bracketInfant, bracketToddler, bracketChild, bracketTeen:
		return pipeline.Match{}
	}

	for _, rule := range d.rules {
		m, ok := evalRule(rule, lower)
		if !ok {
			continue
		}
		if levels, ok := d.bracketUrgency[rule.condition]; ok {
			if level, ok := levels[bracket]; ok {
				m.Urgency = pipeline.Escalate(m.Urgency, level)
			}
		}
		if containsAnyKeyword(lower, d.redFlags) {
			m.Urgency = pipeline.LevelEmergency
		}
		return m
	}
	return pipeline.Match{}
}
