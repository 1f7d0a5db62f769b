package detectors

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// ageBracket buckets a resolved age for the per-bracket urgency tables.
type ageBracket string

const (
	bracketInfant  ageBracket = "infant"  // under 1
	bracketToddler ageBracket = "toddler" // 1-3
	bracketChild   ageBracket = "child"   // 4-12
	bracketTeen    ageBracket = "teen"    // 13-17
	bracketAdult   ageBracket = "adult"   // 18-64
	bracketSenior  ageBracket = "senior"  // 65-79
	bracketElderly ageBracket = "elderly" // 80+
	bracketUnknown ageBracket = ""
)

var (
	yearsOldPattern  = regexp.MustCompile(`\b(\d{1,3})[\s-]*(?:years?|yrs?)[\s-]*old\b`)
	monthsOldPattern = regexp.MustCompile(`\b(\d{1,2})[\s-]*months?[\s-]*old\b`)
)

// agePhrases map age-indicating phrasing onto a representative age when
// no explicit number is available.
var agePhrases = []struct {
	phrase string
	age    int
}{
	{"newborn", 0},
	{"infant", 0},
	{"my baby", 0},
	{"toddler", 2},
	{"preschooler", 4},
	{"my child", 8},
	{"my son", 8},
	{"my daughter", 8},
	{"teenager", 15},
	{"my teen", 15},
	{"elderly", 80},
	{"my grandmother", 80},
	{"my grandfather", 80},
	{"my mother", 65},
	{"my father", 65},
}

// resolveAge returns the best available age: the explicit demographic
// hint first, then "N years old"/"N months old" phrasing, then indirect
// age phrases. Returns nil when nothing resolves.
func resolveAge(lower string, hint *pipeline.Demographics) *int {
	if hint != nil && hint.Age != nil {
		return hint.Age
	}

	if m := yearsOldPattern.FindStringSubmatch(lower); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil && years <= 130 {
			return &years
		}
	}
	if m := monthsOldPattern.FindStringSubmatch(lower); m != nil {
		if months, err := strconv.Atoi(m[1]); err == nil {
			age := 0
			if months >= 12 {
				age = months / 12
			}
			return &age
		}
	}

	for _, p := range agePhrases {
		if strings.Contains(lower, p.phrase) {
			age := p.age
			return &age
		}
	}
	return nil
}

// bracketFor buckets an age.
func bracketFor(age *int) ageBracket {
	if age == nil {
		return bracketUnknown
	}
	switch a := *age; {
	case a < 1:
		return bracketInfant
	case a <= 3:
		return bracketToddler
	case a <= 12:
		return bracketChild
	case a <= 17:
		return bracketTeen
	case a < 65:
		return bracketAdult
	case a < 80:
		return bracketSenior
	default:
		return bracketElderly
	}
}
