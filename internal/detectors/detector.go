package detectors

import (
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// maxInputLength truncates detector input to bound regex work on
// adversarially long turns.
const maxInputLength = 4096

// conditionRule describes one named condition a detector can report.
// A rule fires when any pattern matches the text OR when at least
// threshold symptom/risk-factor keywords are present.
type conditionRule struct {
	condition          string
	patterns           []*regexp.Regexp
	symptomKeywords    []string
	riskFactorKeywords []string
	urgencyModifiers   []string
	threshold          int
	baseUrgency        pipeline.TriageLevel
	complications      []string
	followUp           []string
}

// ruleDetector is the shared rule-table evaluator every concrete
// detector embeds. redFlags unconditionally force EMERGENCY.
type ruleDetector struct {
	name     string
	rules    []conditionRule
	redFlags []string
}

// Name identifies the detector in logs and metrics.
func (d *ruleDetector) Name() string { return d.name }

// Detect evaluates the rule table against the text. The first firing
// rule wins; rules are ordered most-specific first within each
// detector. Returns a zero Match (OK=false) when nothing fires.
func (d *ruleDetector) Detect(text string, hint *pipeline.Demographics) pipeline.Match {
	lower := strings.ToLower(text)
	if len(lower) > maxInputLength {
		lower = lower[:maxInputLength]
	}

	for _, rule := range d.rules {
		m, ok := evalRule(rule, lower)
		if !ok {
			continue
		}
		if containsAnyKeyword(lower, d.redFlags) {
			m.Urgency = pipeline.LevelEmergency
		}
		return m
	}
	return pipeline.Match{}
}

// evalRule checks one rule against the lowered text.
func evalRule(rule conditionRule, lower string) (pipeline.Match, bool) {
	patternHit := false
	for _, re := range rule.patterns {
		if re.MatchString(lower) {
			patternHit = true
			break
		}
	}

	symptoms := keywordHits(lower, rule.symptomKeywords)
	risks := keywordHits(lower, rule.riskFactorKeywords)

	threshold := rule.threshold
	if threshold <= 0 {
		threshold = 1
	}
	if !patternHit && len(symptoms)+len(risks) < threshold {
		return pipeline.Match{}, false
	}

	urgency := rule.baseUrgency
	if containsAnyKeyword(lower, rule.urgencyModifiers) {
		urgency = pipeline.Escalate(urgency, urgency+1)
		if urgency > pipeline.LevelEmergency {
			urgency = pipeline.LevelEmergency
		}
	}

	return pipeline.Match{
		Condition:     rule.condition,
		Symptoms:      symptoms,
		RiskFactors:   risks,
		Urgency:       urgency,
		Complications: rule.complications,
		FollowUp:      rule.followUp,
		OK:            true,
	}, true
}

// keywordHits returns the keywords present in the text.
func keywordHits(lower string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

// containsAnyKeyword reports whether any keyword occurs in the text.
func containsAnyKeyword(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// All returns the full detector set in evaluation order.
func All() []pipeline.Detector {
	return []pipeline.Detector{
		NewPediatric(),
		NewGeriatric(),
		NewCardiac(),
		NewAutoimmune(),
		NewMentalHealth(),
	}
}
