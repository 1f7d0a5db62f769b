package textscan

import (
	"regexp"
	"strconv"
	"strings"
)

// Duration is a parsed symptom duration. Raw preserves the matched
// substring for audit display; Value is nil for inherently non-numeric
// durations ("ongoing", "chronic").
type Duration struct {
	Value *float64 `json:"value"`
	Unit  string   `json:"unit"`
	Raw   string   `json:"raw"`
}

// durationPattern pairs a compiled regex with an extraction strategy.
// Patterns are evaluated in order; the first match wins and at most one
// duration is produced per call.
type durationPattern struct {
	regex   *regexp.Regexp
	extract func(match []string) *Duration
}

var durationPatterns = buildDurationPatterns()

func buildDurationPatterns() []durationPattern {
	numericWords := map[string]float64{
		"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4,
		"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
		"couple of": 2, "few": 3, "several": 3,
	}

	return []durationPattern{
		// Numeric + unit: "3 days", "for 2 weeks", "about 12 hours".
		{
			regex: regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(hour|hr|day|week|month|year)s?\b`),
			extract: func(m []string) *Duration {
				v, err := strconv.ParseFloat(m[1], 64)
				if err != nil {
					return nil
				}
				return &Duration{Value: &v, Unit: normalizeUnit(m[2]), Raw: m[0]}
			},
		},
		// Spelled-out quantity: "a few days", "couple of weeks", "two hours".
		{
			regex: regexp.MustCompile(`(?i)\b(a|an|one|two|three|four|five|six|seven|eight|nine|ten|couple of|few|several)\s+(hour|hr|day|week|month|year)s?\b`),
			extract: func(m []string) *Duration {
				v, ok := numericWords[strings.ToLower(m[1])]
				if !ok {
					return nil
				}
				return &Duration{Value: &v, Unit: normalizeUnit(m[2]), Raw: m[0]}
			},
		},
		// Relative: "since yesterday", "since last week", "since this morning".
		{
			regex: regexp.MustCompile(`(?i)\bsince\s+(yesterday|last\s+(?:night|week|month)|this\s+(?:morning|afternoon|evening|week))\b`),
			extract: func(m []string) *Duration {
				v, unit := relativeValue(strings.ToLower(m[1]))
				return &Duration{Value: &v, Unit: unit, Raw: m[0]}
			},
		},
		// Vague: "ongoing", "chronic", "constant". No numeric value.
		{
			regex: regexp.MustCompile(`(?i)\b(ongoing|chronic|constant|persistent|on and off|comes and goes)\b`),
			extract: func(m []string) *Duration {
				return &Duration{Value: nil, Unit: strings.ToLower(m[1]), Raw: m[0]}
			},
		},
	}
}

// ParseDuration scans text for a duration expression. Patterns are tried
// in priority order (numeric, spelled-out, relative, vague) and the first
// match wins. Returns nil when no pattern matches.
func ParseDuration(text string) *Duration {
	if text == "" {
		return nil
	}
	for _, p := range durationPatterns {
		m := p.regex.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if d := p.extract(m); d != nil {
			return d
		}
	}
	return nil
}

// normalizeUnit maps unit aliases onto their canonical singular form.
func normalizeUnit(unit string) string {
	unit = strings.ToLower(unit)
	if unit == "hr" {
		return "hour"
	}
	return unit
}

// relativeValue converts a relative time phrase into an approximate
// value/unit pair. Approximations are intentional; the pipeline only
// needs order-of-magnitude recency.
func relativeValue(phrase string) (float64, string) {
	phrase = strings.Join(strings.Fields(phrase), " ")
	switch phrase {
	case "yesterday", "last night":
		return 1, "day"
	case "last week":
		return 1, "week"
	case "last month":
		return 1, "month"
	default:
		// "this morning" and friends: under a day.
		return 1, "day"
	}
}
