package detectors

import (
	"regexp"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// NewAutoimmune builds the autoimmune/inflammatory detector. These
// presentations are rarely emergencies; the value is in recognizing
// symptom clusters that warrant a workup rather than reassurance.
func NewAutoimmune() *ruleDetector {
	return &ruleDetector{
		name: "autoimmune",
		rules: []conditionRule{
			{
				condition: "possible inflammatory arthritis",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?:morning )?stiff(?:ness)?.{0,40}(?:joints?|hands?|fingers?)`),
					regexp.MustCompile(`joints?.{0,30}(?:both|symmetric|same on both)`),
				},
				symptomKeywords:    []string{"joint pain", "stiff joints", "swollen joints", "morning stiffness"},
				riskFactorKeywords: []string{"rheumatoid", "family history of autoimmune", "psoriasis"},
				threshold:          2,
				baseUrgency:        pipeline.LevelNonUrgent,
				complications:      []string{"joint damage if untreated"},
				followUp: []string{
					"Is the stiffness worse in the morning, and how long does it last?",
					"Are the same joints affected on both sides?",
				},
			},
			{
				condition: "possible lupus flare",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`butterfly rash`),
					regexp.MustCompile(`rash.{0,40}(?:face|cheeks).{0,60}(?:sun|sunlight)`),
				},
				symptomKeywords:    []string{"rash", "joint pain", "fatigue", "mouth sores", "hair loss", "sensitive to sun"},
				riskFactorKeywords: []string{"lupus", "autoimmune"},
				urgencyModifiers:   []string{"chest pain", "short of breath", "swelling in my legs"},
				threshold:          3,
				baseUrgency:        pipeline.LevelNonUrgent,
				complications:      []string{"organ involvement"},
				followUp: []string{
					"Does sunlight make the rash or fatigue worse?",
					"Have you had unexplained fevers or mouth sores?",
				},
			},
			{
				condition: "possible thyroid disorder",
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?:weight (?:gain|loss)).{0,60}(?:tired|fatigue|cold|hot)`),
					regexp.MustCompile(`(?:always|constantly) (?:cold|hot).{0,60}(?:tired|fatigue|weight)`),
				},
				symptomKeywords:    []string{"weight gain", "weight loss", "always cold", "always hot", "fatigue", "hair thinning"},
				riskFactorKeywords: []string{"thyroid", "family history of thyroid"},
				threshold:          2,
				baseUrgency:        pipeline.LevelNonUrgent,
				complications:      []string{"untreated hypo/hyperthyroidism"},
				followUp: []string{
					"Have you noticed changes in weight without diet changes?",
				},
			},
		},
		redFlags: []string{
			"can't breathe", "chest pain with rash", "severe swelling of face",
		},
	}
}
