package extraction

import (
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
	"github.com/fyrsmithlabs/triaged/internal/textscan"
)

// Extractor turns raw text into structured intent and symptom data. It
// holds no mutable state and is safe for concurrent use.
type Extractor struct {
	negationOpts []textscan.Option
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithNegationOptions forwards window tuning to the negation predicate.
func WithNegationOptions(opts ...textscan.Option) ExtractorOption {
	return func(e *Extractor) { e.negationOpts = opts }
}

// NewExtractor creates an extractor with the built-in symptom table.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the full extraction sequence: duration parsing,
// condition-type bucketing, primary symptom matching with per-symptom
// negation, fallback location+pain synthesis, intent classification,
// and contextual correction. It is pure and never fails; empty or
// garbage input yields a general_inquiry intent with no symptoms.
func (e *Extractor) Extract(text string) pipeline.Extraction {
	lower := strings.ToLower(text)

	// Step 1: at most one duration per turn, attached to the first
	// symptom found.
	duration := textscan.ParseDuration(text)

	// Step 2: condition-type bucket.
	conditionType := classifyConditionType(lower)

	// Step 3: primary symptom matching.
	negated := textscan.NegationPredicate(text, e.negationOpts...)
	severity := severityClassifier(lower)

	var symptoms []pipeline.Symptom
	for _, entry := range symptomDB {
		if !matchesAny(entry.patterns, text) {
			continue
		}
		symptoms = append(symptoms, pipeline.Symptom{
			Name:     entry.name,
			Location: entry.location,
			Severity: severity(entry.synonyms),
			Negated:  isNegated(negated, entry.synonyms),
		})
	}

	// Step 4: fallback matching when the table found nothing.
	if len(symptoms) == 0 {
		if s, ok := fallbackSymptom(lower); ok {
			symptoms = append(symptoms, s)
		}
	}

	// Attach the duration to the first non-negated symptom.
	if duration != nil {
		for i := range symptoms {
			if !symptoms[i].Negated {
				symptoms[i].Duration = duration
				break
			}
		}
	}

	// Step 5: intent classification.
	intent := classifyIntent(lower, countPositive(symptoms), conditionType)

	// Step 6: contextual correction.
	symptoms = correct(symptoms)

	return pipeline.Extraction{
		Intent:        intent,
		Symptoms:      symptoms,
		ConditionType: conditionType,
		BodySystem:    dominantBodySystem(symptoms),
	}
}

// matchesAny reports whether any compiled pattern matches the text.
func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// isNegated checks the negation predicate against each synonym and
// reports negated only when the synonym actually present is negated.
func isNegated(negated func(string) bool, synonyms []string) bool {
	for _, syn := range synonyms {
		if negated(syn) {
			return true
		}
	}
	return false
}

// severityClassifier returns a closure grading severity from qualifier
// words near any of a symptom's synonyms. A global qualifier ("severe
// pain everywhere") applies to all symptoms in the turn.
func severityClassifier(lower string) func(synonyms []string) pipeline.Severity {
	return func(synonyms []string) pipeline.Severity {
		for _, syn := range synonyms {
			syn = strings.ToLower(syn)
			idx := strings.Index(lower, syn)
			if idx < 0 {
				continue
			}
			window := lower[max(0, idx-30):idx]
			switch {
			case strings.Contains(window, "severe"),
				strings.Contains(window, "worst"),
				strings.Contains(window, "unbearable"),
				strings.Contains(window, "excruciating"),
				strings.Contains(window, "intense"):
				return pipeline.SeveritySevere
			case strings.Contains(window, "moderate"):
				return pipeline.SeverityModerate
			case strings.Contains(window, "mild"),
				strings.Contains(window, "slight"),
				strings.Contains(window, "a little"),
				strings.Contains(window, "minor"):
				return pipeline.SeverityMild
			}
		}
		return ""
	}
}

// fallbackSymptom synthesizes "<location> pain" when a body-location
// word co-occurs with generic discomfort vocabulary.
func fallbackSymptom(lower string) (pipeline.Symptom, bool) {
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	})

	var loc pipeline.BodyLocation
	var locWord string
	hasPain := false
	for _, w := range words {
		if l, ok := fallbackLocations[w]; ok && locWord == "" {
			loc = l
			locWord = w
		}
		for _, p := range painVocabulary {
			if w == p {
				hasPain = true
			}
		}
	}

	if locWord == "" || !hasPain {
		return pipeline.Symptom{}, false
	}
	return pipeline.Symptom{
		Name:     locWord + " pain",
		Location: loc,
	}, true
}

// correct applies contextual correction: de-duplicate by (name,
// location) keeping the first occurrence's duration and severity, and
// normalize unknown locations to UNSPECIFIED.
func correct(symptoms []pipeline.Symptom) []pipeline.Symptom {
	type key struct {
		name     string
		location pipeline.BodyLocation
	}

	seen := make(map[key]int, len(symptoms))
	out := make([]pipeline.Symptom, 0, len(symptoms))
	for _, s := range symptoms {
		s.Location = pipeline.NormalizeLocation(s.Location)
		k := key{name: s.Name, location: s.Location}
		if idx, dup := seen[k]; dup {
			// First mention wins; later duplicates only fill gaps.
			if out[idx].Duration == nil && s.Duration != nil {
				out[idx].Duration = s.Duration
			}
			if out[idx].Severity == "" && s.Severity != "" {
				out[idx].Severity = s.Severity
			}
			continue
		}
		seen[k] = len(out)
		out = append(out, s)
	}
	return out
}

// countPositive counts non-negated symptoms.
func countPositive(symptoms []pipeline.Symptom) int {
	n := 0
	for _, s := range symptoms {
		if !s.Negated {
			n++
		}
	}
	return n
}

// dominantBodySystem maps the first non-negated symptom's location onto
// a body system label.
func dominantBodySystem(symptoms []pipeline.Symptom) string {
	for _, s := range symptoms {
		if s.Negated {
			continue
		}
		if sys, ok := bodySystems[s.Location]; ok {
			return sys
		}
	}
	return ""
}
