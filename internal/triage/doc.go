// Package triage implements the safety-critical decision point of the
// pipeline: a rule-based engine that turns extracted symptoms, raw text,
// and detector findings into a triage verdict.
//
// The engine is monotonic and conservative. Within one evaluation the
// level only ever moves NON_URGENT -> URGENT -> EMERGENCY; every level
// change routes through pipeline.Escalate so a downgrade is impossible
// by construction. The engine never panics and never returns an error:
// unparseable input yields NON_URGENT with empty reasons, and crisis
// phrasing overrides everything else.
package triage
