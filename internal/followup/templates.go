package followup

import "github.com/fyrsmithlabs/triaged/internal/pipeline"

// conditionTemplates key clarifying questions by condition type, then by
// urgency level. A missing level falls through to the generic set.
var conditionTemplates = map[string]map[pipeline.TriageLevel][]string{
	"ACUTE": {
		pipeline.LevelNonUrgent: {
			"When did the symptoms start?",
			"Have the symptoms been getting better, worse, or staying the same?",
			"Have you taken anything for it so far?",
		},
		pipeline.LevelUrgent: {
			"When exactly did this start?",
			"Is the pain constant, or does it come and go?",
			"Do you have any other symptoms, such as fever or nausea?",
		},
		pipeline.LevelEmergency: {
			"Are you able to speak in full sentences right now?",
			"Is someone with you who can help?",
		},
	},
	"CHRONIC": {
		pipeline.LevelNonUrgent: {
			"How long have you been managing this condition?",
			"Has anything changed recently compared to your usual symptoms?",
			"Are you currently taking medication for it?",
		},
		pipeline.LevelUrgent: {
			"Is this flare significantly worse than your usual episodes?",
			"Have you already contacted the clinician who manages this condition?",
		},
	},
	"MEDICATION": {
		pipeline.LevelNonUrgent: {
			"What medication are you asking about, and what dose?",
			"Are you taking any other medications or supplements?",
			"Do you have any known drug allergies?",
		},
		pipeline.LevelUrgent: {
			"How much did you take, and when?",
			"Do you have the medication packaging with you?",
		},
	},
	"PREVENTIVE": {
		pipeline.LevelNonUrgent: {
			"When was your last check-up or screening?",
			"Do you have any family history relevant to this concern?",
		},
	},
	"MENTAL_HEALTH": {
		pipeline.LevelUrgent: {
			"Are you somewhere safe right now?",
			"Is there someone you trust who you can reach out to today?",
		},
		pipeline.LevelEmergency: {
			"Are you safe right now?",
			"Can you stay on the line while help is arranged?",
		},
	},
}

// genericQuestions is the fallback set when no condition template fits.
var genericQuestions = map[pipeline.TriageLevel][]string{
	pipeline.LevelNonUrgent: {
		"When did the symptoms start?",
		"Have you experienced this before?",
		"Is anything making it better or worse?",
	},
	pipeline.LevelUrgent: {
		"When did this start, and has it been getting worse?",
		"Are you able to get to a clinic or urgent care today?",
	},
	pipeline.LevelEmergency: {
		"Is someone with you who can help?",
	},
}

// symptomProbes add one targeted question per recognized symptom.
var symptomProbes = map[string]string{
	"chest pain":          "Does the chest pain spread to your arm, jaw, or back?",
	"shortness of breath": "Does the breathlessness happen at rest, or only with activity?",
	"headache":            "Is this headache different from headaches you've had before?",
	"fever":               "Have you measured your temperature, and if so what was it?",
	"abdominal pain":      "Can you point to where the abdominal pain is worst?",
	"dizziness":           "Does the dizziness feel like spinning, or like you might faint?",
	"vomiting":            "Are you able to keep fluids down?",
	"rash":                "Is the rash spreading, blistering, or painful to touch?",
	"palpitations":        "Do the palpitations come with chest pain or lightheadedness?",
	"numbness":            "Is the numbness on one side of the body only?",
}

// Age routing questions. Pediatric questions address the caregiver;
// geriatric questions probe fall risk and medication load.
var (
	pediatricQuestions = []string{
		"Is the child drinking fluids and producing wet diapers or urine as usual?",
		"Is the child alert and responding normally?",
	}
	geriatricQuestions = []string{
		"Have there been any falls or near-falls recently?",
		"Has there been any recent change to medications?",
	}
)

// questionPriority fixes the ordering of the merged question list.
// Questions containing an earlier keyword sort first; everything else
// keeps insertion order after them.
var questionPriority = []string{
	"safe",
	"breath",
	"chest",
	"when",
	"worse",
}
