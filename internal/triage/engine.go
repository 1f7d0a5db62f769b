package triage

import (
	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// Engine applies the red-flag, compound, detector, and crisis rule
// tiers in order. All rules are compiled at construction; Evaluate is
// safe for concurrent use.
type Engine struct {
	redFlags []redFlagRule
	compound []compoundRule
	crisis   []crisisRule
}

// NewEngine creates an engine with the built-in rule tables.
func NewEngine() *Engine {
	return &Engine{
		redFlags: defaultRedFlags(),
		compound: defaultCompoundRules(),
		crisis:   defaultCrisisRules(),
	}
}

// Evaluate computes the base triage verdict for the turn. The scan
// order matters:
//
//  1. red-flag table, priority-ordered; the first EMERGENCY match
//     short-circuits the table, URGENT matches apply only while the
//     level is still NON_URGENT
//  2. compound rules, raise-only
//  3. detector urgencies, raise-only
//  4. crisis rules, which override everything
//
// Evaluate never panics and has no error path: empty or unparseable
// input produces NON_URGENT with empty reasons.
func (e *Engine) Evaluate(c *pipeline.Context, matches []pipeline.Match) pipeline.Verdict {
	v := pipeline.Verdict{
		Level:        pipeline.LevelNonUrgent,
		Reasons:      []string{},
		SymptomNames: []string{},
	}
	if c == nil || c.RawInput == "" {
		return v
	}
	text := c.RawInput

	seen := map[string]struct{}{}
	addSymptom := func(name string) {
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		v.SymptomNames = append(v.SymptomNames, name)
	}

	// Tier 1: red flags.
	for _, rule := range e.redFlags {
		if !rule.pattern.MatchString(text) {
			continue
		}
		if rule.level == pipeline.LevelEmergency {
			v.Level = pipeline.LevelEmergency
			v.Reasons = append(v.Reasons, rule.reason)
			addSymptom(rule.symptom)
			break
		}
		// URGENT entries never downgrade an earlier match.
		if v.Level == pipeline.LevelNonUrgent {
			v.Level = pipeline.LevelUrgent
			v.Reasons = append(v.Reasons, rule.reason)
			addSymptom(rule.symptom)
		}
	}

	// Tier 2: compound rules, independent of the red-flag table.
	for _, rule := range e.compound {
		if rule.first.MatchString(text) && rule.second.MatchString(text) {
			if pipeline.Escalate(v.Level, rule.level) != v.Level {
				v.Level = rule.level
				v.Reasons = append(v.Reasons, rule.reason)
			}
			addSymptom(rule.symptom)
		}
	}

	// Tier 3: detector findings.
	for _, m := range matches {
		if !m.OK {
			continue
		}
		if pipeline.Escalate(v.Level, m.Urgency) != v.Level {
			v.Level = m.Urgency
			v.Reasons = append(v.Reasons, "domain finding: "+m.Condition)
		}
		for _, s := range m.Symptoms {
			addSymptom(s)
		}
	}

	// Tier 4: crisis rules override everything above.
	for _, rule := range e.crisis {
		if !rule.pattern.MatchString(text) {
			continue
		}
		if pipeline.Escalate(v.Level, rule.level) != v.Level {
			v.Level = rule.level
		}
		v.Reasons = append(v.Reasons, rule.reason)
		break
	}

	// Extracted symptom names round out the audit trail.
	for _, s := range c.Symptoms {
		if !s.Negated {
			addSymptom(s.Name)
		}
	}

	v.HighRisk = v.Level != pipeline.LevelNonUrgent
	return v
}
