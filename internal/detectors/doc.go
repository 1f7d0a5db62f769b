// Package detectors holds the specialized symptom-to-condition mappers
// that feed the triage engine. Every detector is a pure function over
// the raw text plus an optional demographic hint, structured as a table
// of condition rules: regex patterns, symptom and risk-factor keywords,
// urgency modifiers, and follow-up questions.
//
// A condition fires when its regex set matches or when enough of its
// keywords are present. Age-aware detectors (pediatric, geriatric) first
// resolve an age bracket and pick urgency from a per-bracket table; any
// red-flag keyword forces EMERGENCY regardless of bracket.
//
// Detectors never mutate the pipeline Context. They return a Match value
// that the triage engine may fold in, raise-only.
package detectors
