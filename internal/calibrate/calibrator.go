package calibrate

import (
	"strings"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// Escalation thresholds. A multiplier below escalateUrgent never moves
// the level; one at or above escalateEmergency can move URGENT to
// EMERGENCY.
const (
	escalateUrgent    = 1.5
	escalateEmergency = 2.0
)

// Calibrator implements pipeline.Calibrator using the static demographic
// tables in this package. It is stateless and safe for concurrent use.
type Calibrator struct{}

// NewCalibrator creates a demographic calibrator.
func NewCalibrator() *Calibrator {
	return &Calibrator{}
}

// Calibrate computes the demographic risk multiplier for the condition
// and decides whether the base level should escalate. The result is
// raise-only: AdjustedLevel is always pipeline.Escalate(base, proposed),
// so callers can apply it directly.
//
// The multiplier starts at 1.0 and composes multiplicatively:
//
//   - the age band for the condition's category
//   - socioeconomic access factors, applied only while the base level is
//     NON_URGENT (their purpose is to surface barriers to routine care,
//     not to inflate an already-urgent verdict)
//
// Sex-specific considerations never change the multiplier; they only add
// advisory text.
func (cal *Calibrator) Calibrate(condition string, demo pipeline.Demographics, base pipeline.TriageLevel) pipeline.Calibration {
	category := categoryFor(condition)

	out := pipeline.Calibration{
		AdjustedLevel:  base,
		RiskMultiplier: 1.0,
	}

	if demo.Age != nil {
		out.RiskMultiplier *= ageMultiplierFor(category, *demo.Age)
	}

	if advisories, ok := sexConsiderations[category][string(demo.Sex)]; ok {
		out.Considerations = append(out.Considerations, advisories...)
	}

	if base == pipeline.LevelNonUrgent {
		factor, recs := socioeconomicAdjustment(demo.Socioeconomic)
		out.RiskMultiplier *= factor
		out.Recommendations = append(out.Recommendations, recs...)
	}

	out.AdjustedLevel = pipeline.Escalate(base, proposedLevel(base, out.RiskMultiplier))
	return out
}

// proposedLevel maps the multiplier onto a level proposal relative to
// the base. Each threshold moves the level at most one step.
func proposedLevel(base pipeline.TriageLevel, multiplier float64) pipeline.TriageLevel {
	switch base {
	case pipeline.LevelNonUrgent:
		if multiplier >= escalateUrgent {
			return pipeline.LevelUrgent
		}
	case pipeline.LevelUrgent:
		if multiplier >= escalateEmergency {
			return pipeline.LevelEmergency
		}
	}
	return base
}

// ageMultiplierFor looks up the band for age within the category table.
func ageMultiplierFor(category conditionCategory, age int) float64 {
	bands, ok := ageMultipliers[category]
	if !ok {
		bands = ageMultipliers[categoryGeneralHealth]
	}
	for _, band := range bands {
		if age >= band.min && age <= band.max {
			return band.multiplier
		}
	}
	return 1.0
}

// socioeconomicAdjustment folds matching access factors into one
// multiplier and collects their care recommendations.
func socioeconomicAdjustment(factors []string) (float64, []string) {
	multiplier := 1.0
	var recs []string
	for _, raw := range factors {
		lower := strings.ToLower(raw)
		for _, entry := range socioeconomicFactors {
			for _, kw := range entry.keywords {
				if strings.Contains(lower, kw) {
					multiplier *= entry.factor
					recs = append(recs, entry.recommendation)
					break
				}
			}
		}
	}
	return multiplier, recs
}
