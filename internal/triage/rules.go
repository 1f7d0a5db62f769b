package triage

import (
	"regexp"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// redFlagRule is a text pattern whose presence alone is sufficient to
// force a target level.
type redFlagRule struct {
	pattern *regexp.Regexp
	level   pipeline.TriageLevel
	reason  string
	symptom string
}

// compoundRule raises the level when both patterns are present. The
// individual findings may be benign on their own; the combination is
// what matters.
type compoundRule struct {
	first   *regexp.Regexp
	second  *regexp.Regexp
	level   pipeline.TriageLevel
	reason  string
	symptom string
}

// crisisRule handles self-harm and suicidal-ideation phrasing. These
// are evaluated last and override everything else.
type crisisRule struct {
	pattern *regexp.Regexp
	level   pipeline.TriageLevel
	reason  string
}

// defaultRedFlags is the priority-ordered red-flag table. EMERGENCY
// rules come first so a match can short-circuit the scan.
func defaultRedFlags() []redFlagRule {
	return []redFlagRule{
		{
			pattern: regexp.MustCompile(`(?i)(?:can'?t|cannot|unable to) breathe`),
			level:   pipeline.LevelEmergency,
			reason:  "inability to breathe reported",
			symptom: "shortness of breath",
		},
		{
			pattern: regexp.MustCompile(`(?i)(?:severe|crushing|squeezing) chest (?:pain|pressure|tightness)`),
			level:   pipeline.LevelEmergency,
			reason:  "severe chest pain reported",
			symptom: "chest pain",
		},
		{
			pattern: regexp.MustCompile(`(?i)(?:passed out|unconscious|unresponsive|won'?t wake)`),
			level:   pipeline.LevelEmergency,
			reason:  "loss of consciousness reported",
			symptom: "loss of consciousness",
		},
		{
			pattern: regexp.MustCompile(`(?i)(?:severe|heavy|uncontrolled|won'?t stop) bleeding`),
			level:   pipeline.LevelEmergency,
			reason:  "uncontrolled bleeding reported",
			symptom: "bleeding",
		},
		{
			pattern: regexp.MustCompile(`(?i)(?:face drooping|slurred speech|one side (?:of my )?(?:body|face) (?:is )?(?:numb|weak))`),
			level:   pipeline.LevelEmergency,
			reason:  "possible stroke signs reported",
			symptom: "stroke signs",
		},
		{
			pattern: regexp.MustCompile(`(?i)seizure`),
			level:   pipeline.LevelEmergency,
			reason:  "seizure reported",
			symptom: "seizure",
		},
		{
			pattern: regexp.MustCompile(`(?i)overdose`),
			level:   pipeline.LevelEmergency,
			reason:  "possible overdose reported",
			symptom: "overdose",
		},
		{
			pattern: regexp.MustCompile(`(?i)(?:worst headache of my life|thunderclap headache)`),
			level:   pipeline.LevelEmergency,
			reason:  "worst-ever headache reported",
			symptom: "headache",
		},
		// URGENT tier below; these only apply while the level is still
		// NON_URGENT.
		{
			pattern: regexp.MustCompile(`(?i)chest (?:pain|pressure|tightness|discomfort)`),
			level:   pipeline.LevelUrgent,
			reason:  "chest pain reported",
			symptom: "chest pain",
		},
		{
			pattern: regexp.MustCompile(`(?i)(?:short(?:ness)? of breath|trouble breathing|difficulty breathing)`),
			level:   pipeline.LevelUrgent,
			reason:  "breathing difficulty reported",
			symptom: "shortness of breath",
		},
		{
			pattern: regexp.MustCompile(`(?i)(?:high fever|fever of 10[3-6]|temperature of 10[3-6])`),
			level:   pipeline.LevelUrgent,
			reason:  "high fever reported",
			symptom: "fever",
		},
		{
			pattern: regexp.MustCompile(`(?i)(?:severe|unbearable|excruciating) (?:abdominal|stomach|belly) pain`),
			level:   pipeline.LevelUrgent,
			reason:  "severe abdominal pain reported",
			symptom: "abdominal pain",
		},
		{
			pattern: regexp.MustCompile(`(?i)(?:vomiting|throwing up) blood`),
			level:   pipeline.LevelUrgent,
			reason:  "vomiting blood reported",
			symptom: "vomiting",
		},
		{
			pattern: regexp.MustCompile(`(?i)(?:sudden|severe) (?:dizziness|confusion)`),
			level:   pipeline.LevelUrgent,
			reason:  "sudden dizziness or confusion reported",
			symptom: "dizziness",
		},
	}
}

// defaultCompoundRules pair findings that together warrant escalation.
func defaultCompoundRules() []compoundRule {
	return []compoundRule{
		{
			first:   regexp.MustCompile(`(?i)(?:severe|worst) headache`),
			second:  regexp.MustCompile(`(?i)(?:blurry|blurred|double) vision|vision (?:changes?|loss)`),
			level:   pipeline.LevelUrgent,
			reason:  "severe headache together with vision changes",
			symptom: "headache",
		},
		{
			first:   regexp.MustCompile(`(?i)chest (?:pain|pressure|tightness)`),
			second:  regexp.MustCompile(`(?i)short(?:ness)? of breath|trouble breathing|sweating|nause`),
			level:   pipeline.LevelEmergency,
			reason:  "chest pain together with breathing difficulty or autonomic symptoms",
			symptom: "chest pain",
		},
		{
			first:   regexp.MustCompile(`(?i)fever`),
			second:  regexp.MustCompile(`(?i)stiff neck|neck stiffness`),
			level:   pipeline.LevelEmergency,
			reason:  "fever together with neck stiffness",
			symptom: "fever",
		},
		{
			first:   regexp.MustCompile(`(?i)(?:abdominal|stomach) pain`),
			second:  regexp.MustCompile(`(?i)(?:vomiting|throwing up).{0,40}blood|blood in (?:my )?stool`),
			level:   pipeline.LevelEmergency,
			reason:  "abdominal pain together with gastrointestinal bleeding",
			symptom: "abdominal pain",
		},
	}
}

// defaultCrisisRules: self-harm phrasing is never below URGENT;
// suicidal ideation is EMERGENCY unconditionally.
func defaultCrisisRules() []crisisRule {
	return []crisisRule{
		{
			pattern: regexp.MustCompile(`(?i)(?:suicid|kill(?:ing)? myself|end(?:ing)? my life|better off dead|want to die|don'?t want to (?:live|be alive))`),
			level:   pipeline.LevelEmergency,
			reason:  "suicidal ideation phrasing detected",
		},
		{
			pattern: regexp.MustCompile(`(?i)(?:hurt(?:ing)? myself|self[- ]harm|cut(?:ting)? myself)`),
			level:   pipeline.LevelUrgent,
			reason:  "self-harm phrasing detected",
		},
	}
}
