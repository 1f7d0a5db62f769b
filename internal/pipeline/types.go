package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/triaged/internal/textscan"
)

// TriageLevel ranks how urgently the user should seek care. Levels are
// ordered so that a larger value always means more urgent; comparisons
// must go through Escalate rather than ad-hoc arithmetic.
type TriageLevel int

const (
	LevelNonUrgent TriageLevel = iota
	LevelUrgent
	LevelEmergency
)

// String returns the wire/display form of the level.
func (l TriageLevel) String() string {
	switch l {
	case LevelEmergency:
		return "EMERGENCY"
	case LevelUrgent:
		return "URGENT"
	default:
		return "NON_URGENT"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON output.
func (l TriageLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText parses the wire form of the level. Unknown values parse
// as NON_URGENT, the safe floor for externally supplied input.
func (l *TriageLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "EMERGENCY":
		*l = LevelEmergency
	case "URGENT":
		*l = LevelUrgent
	default:
		*l = LevelNonUrgent
	}
	return nil
}

// Escalate returns the more urgent of current and proposed. It is the
// only sanctioned way to combine triage levels: both the triage engine
// and the demographic calibrator route every level change through it,
// which makes the never-downgrade invariant structural.
func Escalate(current, proposed TriageLevel) TriageLevel {
	if proposed > current {
		return proposed
	}
	return current
}

// IntentType classifies what the user is asking for.
type IntentType string

const (
	IntentSymptomCheck      IntentType = "symptom_check"
	IntentEmergency         IntentType = "emergency"
	IntentInformationQuery  IntentType = "information_query"
	IntentPreventionInquiry IntentType = "prevention_inquiry"
	IntentMedicationInquiry IntentType = "medication_inquiry"
	IntentGeneralInquiry    IntentType = "general_inquiry"
)

// Intent is the extractor's classification of the turn.
type Intent struct {
	Type       IntentType `json:"type"`
	Confidence float64    `json:"confidence"`
}

// BodyLocation is the closed set of body regions a symptom can map to.
// Unrecognized values normalize to LocationUnspecified during contextual
// correction.
type BodyLocation string

const (
	LocationHead        BodyLocation = "HEAD"
	LocationChest       BodyLocation = "CHEST"
	LocationAbdomen     BodyLocation = "ABDOMEN"
	LocationBack        BodyLocation = "BACK"
	LocationLimbs       BodyLocation = "LIMBS"
	LocationSkin        BodyLocation = "SKIN"
	LocationThroat      BodyLocation = "THROAT"
	LocationGeneral     BodyLocation = "GENERAL"
	LocationUnspecified BodyLocation = "UNSPECIFIED"
)

// knownLocations is the membership set for BodyLocation normalization.
var knownLocations = map[BodyLocation]struct{}{
	LocationHead: {}, LocationChest: {}, LocationAbdomen: {},
	LocationBack: {}, LocationLimbs: {}, LocationSkin: {},
	LocationThroat: {}, LocationGeneral: {}, LocationUnspecified: {},
}

// NormalizeLocation maps any value outside the closed BodyLocation set
// to LocationUnspecified.
func NormalizeLocation(loc BodyLocation) BodyLocation {
	if _, ok := knownLocations[loc]; ok {
		return loc
	}
	return LocationUnspecified
}

// Severity is a coarse symptom severity grade.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Symptom is a single extracted symptom. Insertion order in
// Context.Symptoms matters: on de-duplication the first mention wins.
type Symptom struct {
	Name     string             `json:"name"`
	Location BodyLocation       `json:"location"`
	Severity Severity           `json:"severity,omitempty"`
	Duration *textscan.Duration `json:"duration,omitempty"`
	Negated  bool               `json:"negated"`
}

// Verdict is the triage engine's output, later adjusted (raise-only) by
// the demographic calibrator.
type Verdict struct {
	Level        TriageLevel `json:"level"`
	HighRisk     bool        `json:"is_high_risk"`
	Reasons      []string    `json:"reasons"`
	SymptomNames []string    `json:"symptom_names"`
}

// Sex is the self-reported sex used by the demographic calibrator.
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexOther   Sex = "other"
	SexUnknown Sex = ""
)

// Demographics carries optional calibration signals for the turn.
type Demographics struct {
	Age           *int     `json:"age,omitempty"`
	Sex           Sex      `json:"sex,omitempty"`
	Socioeconomic []string `json:"socioeconomic_factors,omitempty"`
}

// Metadata holds per-turn processing annotations.
type Metadata struct {
	ProcessingTime   time.Duration `json:"processing_time_ms,omitempty"`
	IntentConfidence float64       `json:"intent_confidence,omitempty"`
	BodySystem       string        `json:"body_system,omitempty"`
	ConditionType    string        `json:"condition_type,omitempty"`
}

// Context is the single mutable record threaded through the pipeline.
// It is created per user turn, mutated in place by each stage, and
// discarded after the turn. RawInput is immutable once set.
//
// Triage is nil until the triage stage runs; once set it is only ever
// escalated within a single pass (see Escalate).
type Context struct {
	TurnID       uuid.UUID    `json:"turn_id"`
	RawInput     string       `json:"raw_input"`
	Intent       *Intent      `json:"intent,omitempty"`
	Symptoms     []Symptom    `json:"symptoms"`
	Triage       *Verdict     `json:"triage,omitempty"`
	Demographics Demographics `json:"demographics"`
	Metadata     Metadata     `json:"metadata"`
	FollowUps    []string     `json:"follow_ups,omitempty"`

	// Considerations and Recommendations are advisory text produced by
	// the demographic calibrator for the downstream prompt builder.
	Considerations  []string `json:"considerations,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// NewContext creates a Context for one user turn.
func NewContext(rawInput string) *Context {
	return &Context{
		TurnID:   uuid.New(),
		RawInput: rawInput,
	}
}
