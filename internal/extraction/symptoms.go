package extraction

import (
	"regexp"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// symptomEntry maps a canonical symptom name to its matching patterns.
// A symptom is recorded when any pattern matches the raw text; the first
// synonym whose literal form appears is used for negation lookups.
type symptomEntry struct {
	name     string
	location pipeline.BodyLocation
	patterns []*regexp.Regexp
	synonyms []string
}

// symptomDB is the primary symptom table. Order matters only for output
// ordering stability; matching is independent per entry.
var symptomDB = []symptomEntry{
	{
		name:     "headache",
		location: pipeline.LocationHead,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bhead\s*ache`),
			regexp.MustCompile(`(?i)\bhead\s+(?:pain|hurts|hurting|pounding|throbbing)`),
			regexp.MustCompile(`(?i)\bmigraine`),
		},
		synonyms: []string{"headache", "head pain", "head hurts", "migraine"},
	},
	{
		name:     "chest pain",
		location: pipeline.LocationChest,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bchest\s+(?:pain|pressure|tightness|discomfort|hurts)`),
			regexp.MustCompile(`(?i)\bpain\s+in\s+(?:my\s+)?chest`),
		},
		synonyms: []string{"chest pain", "chest pressure", "chest tightness"},
	},
	{
		name:     "shortness of breath",
		location: pipeline.LocationChest,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bshort(?:ness)?\s+of\s+breath`),
			regexp.MustCompile(`(?i)\b(?:can'?t|cannot|hard\s+to|trouble|difficulty)\s+breath`),
			regexp.MustCompile(`(?i)\bbreathless`),
			regexp.MustCompile(`(?i)\bwheez`),
		},
		synonyms: []string{"shortness of breath", "breathless", "trouble breathing"},
	},
	{
		name:     "fever",
		location: pipeline.LocationGeneral,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bfever`),
			regexp.MustCompile(`(?i)\b(?:high\s+)?temperature\s+of`),
			regexp.MustCompile(`(?i)\bburning\s+up`),
		},
		synonyms: []string{"fever", "temperature"},
	},
	{
		name:     "chills",
		location: pipeline.LocationGeneral,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bchills?\b`),
			regexp.MustCompile(`(?i)\bshivering`),
		},
		synonyms: []string{"chills", "shivering"},
	},
	{
		name:     "nausea",
		location: pipeline.LocationAbdomen,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bnause(?:a|ous|ated)`),
			regexp.MustCompile(`(?i)\bfeel\s+(?:like\s+)?(?:i'?m\s+going\s+to\s+)?(?:be\s+)?sick\s+to\s+my\s+stomach`),
			regexp.MustCompile(`(?i)\bqueasy`),
		},
		synonyms: []string{"nausea", "nauseous", "queasy"},
	},
	{
		name:     "vomiting",
		location: pipeline.LocationAbdomen,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bvomit`),
			regexp.MustCompile(`(?i)\bthrow(?:ing|n)?\s+up`),
			regexp.MustCompile(`(?i)\bthrew\s+up`),
		},
		synonyms: []string{"vomiting", "throwing up"},
	},
	{
		name:     "abdominal pain",
		location: pipeline.LocationAbdomen,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:stomach|abdominal|belly|tummy)\s+(?:pain|ache|cramps?|hurts)`),
			regexp.MustCompile(`(?i)\bpain\s+in\s+(?:my\s+)?(?:stomach|abdomen|belly)`),
		},
		synonyms: []string{"stomach pain", "abdominal pain", "stomach ache", "belly pain"},
	},
	{
		name:     "diarrhea",
		location: pipeline.LocationAbdomen,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bdiarrh?(?:ea|oea)`),
			regexp.MustCompile(`(?i)\bloose\s+stools?`),
		},
		synonyms: []string{"diarrhea", "loose stools"},
	},
	{
		name:     "dizziness",
		location: pipeline.LocationHead,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bdizz(?:y|iness)`),
			regexp.MustCompile(`(?i)\blighthead`),
			regexp.MustCompile(`(?i)\bvertigo`),
			regexp.MustCompile(`(?i)\broom\s+(?:is\s+)?spinning`),
		},
		synonyms: []string{"dizzy", "dizziness", "lightheaded", "vertigo"},
	},
	{
		name:     "fatigue",
		location: pipeline.LocationGeneral,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bfatigue`),
			regexp.MustCompile(`(?i)\b(?:so|very|really|extremely)\s+tired`),
			regexp.MustCompile(`(?i)\bexhaust(?:ed|ion)`),
			regexp.MustCompile(`(?i)\bno\s+energy`),
		},
		synonyms: []string{"fatigue", "tired", "exhausted"},
	},
	{
		name:     "cough",
		location: pipeline.LocationChest,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bcough`),
		},
		synonyms: []string{"cough", "coughing"},
	},
	{
		name:     "sore throat",
		location: pipeline.LocationThroat,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bsore\s+throat`),
			regexp.MustCompile(`(?i)\bthroat\s+(?:pain|hurts|is\s+sore)`),
		},
		synonyms: []string{"sore throat", "throat pain"},
	},
	{
		name:     "rash",
		location: pipeline.LocationSkin,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\brash`),
			regexp.MustCompile(`(?i)\bhives`),
			regexp.MustCompile(`(?i)\bskin\s+(?:is\s+)?(?:red|itchy|irritated)`),
		},
		synonyms: []string{"rash", "hives"},
	},
	{
		name:     "back pain",
		location: pipeline.LocationBack,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bback\s+(?:pain|ache|hurts)`),
			regexp.MustCompile(`(?i)\bpain\s+in\s+(?:my\s+)?(?:lower\s+|upper\s+)?back`),
		},
		synonyms: []string{"back pain", "backache"},
	},
	{
		name:     "joint pain",
		location: pipeline.LocationLimbs,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bjoint\s+(?:pain|ache|stiffness|swelling)`),
			regexp.MustCompile(`(?i)\b(?:knee|elbow|wrist|ankle|shoulder|hip)s?\s+(?:pain|hurts?|aches?|swollen)`),
			regexp.MustCompile(`(?i)\bstiff\s+joints?`),
		},
		synonyms: []string{"joint pain", "stiff joints"},
	},
	{
		name:     "palpitations",
		location: pipeline.LocationChest,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bpalpitations?`),
			regexp.MustCompile(`(?i)\bheart\s+(?:racing|pounding|fluttering|skipping)`),
			regexp.MustCompile(`(?i)\bracing\s+heart`),
		},
		synonyms: []string{"palpitations", "heart racing"},
	},
	{
		name:     "vision changes",
		location: pipeline.LocationHead,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:blurry|blurred|double)\s+vision`),
			regexp.MustCompile(`(?i)\bvision\s+(?:changes?|loss|problems?)`),
			regexp.MustCompile(`(?i)\b(?:can'?t|cannot)\s+see\s+(?:properly|clearly|well)`),
		},
		synonyms: []string{"blurry vision", "vision changes", "double vision"},
	},
	{
		name:     "swelling",
		location: pipeline.LocationLimbs,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bswollen\s+(?:legs?|feet|ankles?|arms?|hands?)`),
			regexp.MustCompile(`(?i)\b(?:legs?|feet|ankles?)\s+(?:are\s+)?swollen`),
		},
		synonyms: []string{"swelling", "swollen ankles"},
	},
	{
		name:     "numbness",
		location: pipeline.LocationLimbs,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bnumb(?:ness)?\b`),
			regexp.MustCompile(`(?i)\btingling`),
			regexp.MustCompile(`(?i)\bpins\s+and\s+needles`),
		},
		synonyms: []string{"numbness", "tingling"},
	},
}

// bodySystems maps a symptom location onto the broad body system used
// in Context metadata.
var bodySystems = map[pipeline.BodyLocation]string{
	pipeline.LocationHead:    "neurological",
	pipeline.LocationChest:   "cardiorespiratory",
	pipeline.LocationAbdomen: "gastrointestinal",
	pipeline.LocationBack:    "musculoskeletal",
	pipeline.LocationLimbs:   "musculoskeletal",
	pipeline.LocationSkin:    "dermatological",
	pipeline.LocationThroat:  "respiratory",
	pipeline.LocationGeneral: "systemic",
}

// fallbackLocations maps plain location words onto BodyLocation for the
// fallback "<location> pain" synthesis when no primary entry matched.
var fallbackLocations = map[string]pipeline.BodyLocation{
	"head":     pipeline.LocationHead,
	"chest":    pipeline.LocationChest,
	"stomach":  pipeline.LocationAbdomen,
	"abdomen":  pipeline.LocationAbdomen,
	"belly":    pipeline.LocationAbdomen,
	"back":     pipeline.LocationBack,
	"arm":      pipeline.LocationLimbs,
	"leg":      pipeline.LocationLimbs,
	"knee":     pipeline.LocationLimbs,
	"shoulder": pipeline.LocationLimbs,
	"foot":     pipeline.LocationLimbs,
	"hand":     pipeline.LocationLimbs,
	"skin":     pipeline.LocationSkin,
	"throat":   pipeline.LocationThroat,
}

// painVocabulary is the generic discomfort vocabulary for fallback
// matching.
var painVocabulary = []string{
	"pain", "ache", "aches", "aching", "hurts", "hurting", "sore", "discomfort", "cramp",
}
