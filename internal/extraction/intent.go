package extraction

import (
	"strings"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// Condition-type buckets. The extractor classifies every turn into one
// of these via substring membership; the first matching bucket wins.
const (
	ConditionAcute         = "ACUTE"
	ConditionChronic       = "CHRONIC"
	ConditionPreventive    = "PREVENTIVE"
	ConditionInformational = "INFORMATIONAL"
	ConditionMedication    = "MEDICATION"
	ConditionGeneral       = "GENERAL"
)

// conditionBucket pairs a bucket name with its membership keywords.
type conditionBucket struct {
	name     string
	keywords []string
}

// conditionBuckets are evaluated in order; first match wins. More
// specific buckets (medication, preventive) come before the broad
// acute/chronic split so "medication for my chronic pain" classifies as
// MEDICATION.
var conditionBuckets = []conditionBucket{
	{
		name: ConditionMedication,
		keywords: []string{
			"medication", "medicine", "prescription", "dose", "dosage",
			"side effect", "pill", "drug", "refill", "ibuprofen", "antibiotic",
		},
	},
	{
		name: ConditionPreventive,
		keywords: []string{
			"prevent", "avoid getting", "vaccine", "vaccination", "screening",
			"checkup", "check-up", "stay healthy", "reduce my risk",
		},
	},
	{
		name: ConditionInformational,
		keywords: []string{
			"what is", "what are", "what causes", "tell me about",
			"information about", "explain", "how does", "is it contagious",
		},
	},
	{
		name: ConditionChronic,
		keywords: []string{
			"chronic", "ongoing", "for months", "for years", "long-term",
			"keeps coming back", "recurring", "on and off",
		},
	},
	{
		name: ConditionAcute,
		keywords: []string{
			"sudden", "suddenly", "acute", "just started", "out of nowhere",
			"sharp", "came on quickly",
		},
	},
}

// emergencyKeywords force the emergency intent regardless of any other
// classification. Presence alone is sufficient.
var emergencyKeywords = []string{
	"can't breathe", "cannot breathe", "crushing chest", "heart attack",
	"stroke", "unconscious", "passed out", "severe bleeding",
	"bleeding heavily", "overdose", "seizure", "choking",
	"suicidal", "kill myself", "end my life",
}

// infoSeekingPhrases mark a turn as information seeking rather than a
// personal symptom report.
var infoSeekingPhrases = []string{
	"what is", "what are", "what causes", "how do i know", "how can i tell",
	"should i be worried about", "is it normal", "can you tell me about",
	"tell me about",
}

// classifyConditionType returns the first matching bucket, defaulting
// to GENERAL.
func classifyConditionType(lower string) string {
	for _, bucket := range conditionBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(lower, kw) {
				return bucket.name
			}
		}
	}
	return ConditionGeneral
}

// classifyIntent derives the intent from symptom count, the condition
// bucket, and override phrasing. Precedence, highest first: emergency
// keywords, information-seeking phrasing, preventive/medication
// buckets, then the symptom-count baseline.
func classifyIntent(lower string, symptomCount int, conditionType string) pipeline.Intent {
	if containsAny(lower, emergencyKeywords) {
		return pipeline.Intent{Type: pipeline.IntentEmergency, Confidence: 0.9}
	}

	if containsAny(lower, infoSeekingPhrases) {
		return pipeline.Intent{Type: pipeline.IntentInformationQuery, Confidence: 0.75}
	}

	switch conditionType {
	case ConditionPreventive:
		return pipeline.Intent{Type: pipeline.IntentPreventionInquiry, Confidence: 0.7}
	case ConditionMedication:
		return pipeline.Intent{Type: pipeline.IntentMedicationInquiry, Confidence: 0.7}
	}

	if symptomCount == 0 {
		return pipeline.Intent{Type: pipeline.IntentGeneralInquiry, Confidence: 0.3}
	}

	// More symptoms mean a clearer symptom report; confidence grows with
	// count but never claims certainty.
	confidence := 0.5 + 0.15*float64(symptomCount)
	if confidence > 0.95 {
		confidence = 0.95
	}
	return pipeline.Intent{Type: pipeline.IntentSymptomCheck, Confidence: confidence}
}

// containsAny reports whether any needle occurs in haystack.
func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
