// Package textscan provides low-level text predicates used by the
// extraction stage: negation detection and duration parsing.
//
// Both are window/pattern heuristics, not linguistic parses. They are
// deliberately cheap and deterministic; known failure modes (long-distance
// negation, compound time expressions) are accepted by design of the
// pipeline, which resolves ambiguity toward the safer reading downstream.
package textscan
