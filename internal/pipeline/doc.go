// Package pipeline defines the per-turn Context record and the stage
// orchestrator that threads it through extraction, domain detection,
// triage, demographic calibration, and follow-up selection.
//
// The Context is created per user turn, mutated in place by each stage,
// and discarded after the turn. Nothing here persists state; the cache
// and analytics services injected into the Pipeline own their own
// process-lifetime state.
//
// The package also owns the single raise-only escalation helper,
// Escalate, shared by the triage engine and the demographic calibrator
// so the never-downgrade invariant holds by construction.
package pipeline
