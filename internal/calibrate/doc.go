// Package calibrate adjusts a base triage verdict for demographic risk:
// age-bracket multipliers per condition category, sex-specific advisory
// considerations, and socioeconomic access factors. The adjustment is
// raise-only and composes with the triage engine's invariant through
// pipeline.Escalate.
package calibrate
