package calibrate

import "strings"

// conditionCategory groups conditions for the age-multiplier tables.
type conditionCategory string

const (
	categoryCardiovascular conditionCategory = "cardiovascular"
	categoryNeurological   conditionCategory = "neurological"
	categoryMentalHealth   conditionCategory = "mental_health"
	categoryGeneralHealth  conditionCategory = "general"
)

// categoryKeywords map condition names onto a category. Matching is
// substring-based over the lowered condition string.
var categoryKeywords = map[conditionCategory][]string{
	categoryCardiovascular: {
		"coronary", "cardiac", "heart", "arrhythmia", "chest",
	},
	categoryNeurological: {
		"stroke", "headache", "migraine", "seizure", "confusion", "neuro",
	},
	categoryMentalHealth: {
		"suicidal", "self-harm", "depression", "panic", "anxiety", "crisis",
	},
}

// ageMultipliers hold per-category risk multipliers by age band. The
// bands reflect how sharply baseline risk climbs with age for each
// category; mental-health risk peaks younger.
var ageMultipliers = map[conditionCategory][]ageBand{
	categoryCardiovascular: {
		{min: 0, max: 39, multiplier: 1.0},
		{min: 40, max: 54, multiplier: 1.2},
		{min: 55, max: 69, multiplier: 1.5},
		{min: 70, max: 130, multiplier: 2.0},
	},
	categoryNeurological: {
		{min: 0, max: 49, multiplier: 1.0},
		{min: 50, max: 64, multiplier: 1.3},
		{min: 65, max: 130, multiplier: 1.7},
	},
	categoryMentalHealth: {
		{min: 0, max: 25, multiplier: 1.5},
		{min: 26, max: 64, multiplier: 1.2},
		{min: 65, max: 130, multiplier: 1.4},
	},
	categoryGeneralHealth: {
		{min: 0, max: 4, multiplier: 1.4},
		{min: 5, max: 64, multiplier: 1.0},
		{min: 65, max: 130, multiplier: 1.3},
	},
}

// ageBand is one row of an age-multiplier table.
type ageBand struct {
	min, max   int
	multiplier float64
}

// sexConsiderations are advisory only: they shape the guidance text,
// never the numeric multiplier.
var sexConsiderations = map[conditionCategory]map[string][]string{
	categoryCardiovascular: {
		"female": {
			"Heart attack symptoms in women are more often atypical: fatigue, nausea, or jaw pain rather than classic chest pain.",
		},
		"male": {
			"Men under-report cardiac symptoms; persistent chest discomfort warrants evaluation even if it feels minor.",
		},
	},
	categoryMentalHealth: {
		"male": {
			"Men are statistically less likely to seek mental-health support early; reaching out now is the right call.",
		},
	},
}

// socioeconomicFactors increase the multiplier when baseline urgency is
// NON_URGENT, modeling reduced ability to obtain timely follow-up care.
var socioeconomicFactors = []struct {
	keywords       []string
	factor         float64
	recommendation string
}{
	{
		keywords:       []string{"no insurance", "uninsured", "can't afford"},
		factor:         1.3,
		recommendation: "Community health centers and sliding-scale clinics can provide care regardless of insurance status.",
	},
	{
		keywords:       []string{"no transportation", "can't get to", "no car"},
		factor:         1.2,
		recommendation: "Telehealth services or medical transport programs may help if travel is a barrier.",
	},
	{
		keywords:       []string{"rural", "far from hospital", "remote area"},
		factor:         1.2,
		recommendation: "Plan ahead for the travel time to the nearest emergency department.",
	},
}

// categoryFor resolves a condition name to its category.
func categoryFor(condition string) conditionCategory {
	lower := strings.ToLower(condition)
	for category, keywords := range categoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return category
			}
		}
	}
	return categoryGeneralHealth
}
