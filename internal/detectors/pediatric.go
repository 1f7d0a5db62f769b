package detectors

import (
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// Pediatric detects childhood conditions. It is age-aware: the urgency
// for a fired condition comes from a per-bracket table, because the
// same presentation (fever, poor fluid intake) is an emergency in an
// infant and routine in a twelve-year-old.
type Pediatric struct {
	ruleDetector
	bracketUrgency map[string]map[ageBracket]pipeline.TriageLevel
}

// NewPediatric builds the pediatric rule table.
func NewPediatric() *Pediatric {
	return &Pediatric{
		ruleDetector: ruleDetector{
			name: "pediatric",
			rules: []conditionRule{
				{
					condition: "pediatric fever",
					patterns: []*regexp.Regexp{
						regexp.MustCompile(`(?:baby|infant|toddler|child|son|daughter).{0,40}fever`),
						regexp.MustCompile(`fever.{0,40}(?:baby|infant|toddler|child|son|daughter)`),
					},
					symptomKeywords:  []string{"fever", "temperature", "burning up"},
					urgencyModifiers: []string{"104", "105", "won't come down", "three days", "3 days"},
					threshold:        2,
					baseUrgency:      pipeline.LevelNonUrgent,
					complications:    []string{"febrile seizure", "dehydration"},
					followUp: []string{
						"What is the child's temperature right now?",
						"How long has the fever lasted?",
						"Is the child drinking fluids normally?",
					},
				},
				{
					condition: "pediatric dehydration",
					patterns: []*regexp.Regexp{
						regexp.MustCompile(`no wet diapers?`),
						regexp.MustCompile(`(?:not|won't|refuses? to) (?:drink|eat|feed)`),
						regexp.MustCompile(`sunken (?:eyes|fontanelle)`),
					},
					symptomKeywords:    []string{"dry mouth", "no tears", "very sleepy", "fewer wet diapers"},
					riskFactorKeywords: []string{"vomiting", "diarrhea"},
					threshold:          2,
					baseUrgency:        pipeline.LevelUrgent,
					complications:      []string{"hypovolemia", "electrolyte imbalance"},
					followUp: []string{
						"When did the child last urinate?",
						"Is the child able to keep fluids down?",
					},
				},
				{
					condition: "croup",
					patterns: []*regexp.Regexp{
						regexp.MustCompile(`barking cough`),
						regexp.MustCompile(`stridor`),
						regexp.MustCompile(`seal[- ]like cough`),
					},
					symptomKeywords: []string{"hoarse", "noisy breathing"},
					threshold:       2,
					baseUrgency:     pipeline.LevelUrgent,
					complications:   []string{"airway obstruction"},
					followUp: []string{
						"Is the noisy breathing present at rest or only when upset?",
					},
				},
			},
			redFlags: []string{
				"unresponsive", "won't wake", "blue lips", "turning blue",
				"bulging fontanelle", "stiff neck", "seizure", "limp and floppy",
			},
		},
		bracketUrgency: map[string]map[ageBracket]pipeline.TriageLevel{
			"pediatric fever": {
				bracketInfant:  pipeline.LevelEmergency, // any fever under 3 months is an emergency; under 1 year we stay maximally conservative
				bracketToddler: pipeline.LevelUrgent,
				bracketChild:   pipeline.LevelNonUrgent,
				bracketTeen:    pipeline.LevelNonUrgent,
			},
			"pediatric dehydration": {
				bracketInfant:  pipeline.LevelEmergency,
				bracketToddler: pipeline.LevelUrgent,
				bracketChild:   pipeline.LevelUrgent,
				bracketTeen:    pipeline.LevelUrgent,
			},
			"croup": {
				bracketInfant:  pipeline.LevelEmergency,
				bracketToddler: pipeline.LevelUrgent,
				bracketChild:   pipeline.LevelUrgent,
			},
		},
	}
}

// Detect resolves the age bracket, evaluates the rule table, and applies
// the per-bracket urgency. Red flags force EMERGENCY regardless of
// bracket. Resolved adult ages suppress the detector entirely.
func (d *Pediatric) Detect(text string, hint *pipeline.Demographics) pipeline.Match {
	lower := strings.ToLower(text)
	if len(lower) > maxInputLength {
		lower = lower[:maxInputLength]
	}

	age := resolveAge(lower, hint)
	bracket := bracketFor(age)
	if bracket == bracketAdult || bracket == bracketSenior || bracket == bracketElderly {
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
