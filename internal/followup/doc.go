// Package followup selects clarifying questions to ask after a triage
// pass. Questions come from condition-and-urgency templates, symptom
// probes, and age-specific routing, then pass through de-duplication
// and a fixed priority ordering before the count cap applies.
package followup
