package followup

import (
	"sort"
	"strings"

	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// MaxQuestions caps how many follow-up questions one turn may carry.
const MaxQuestions = 5

// Age routing boundaries.
const (
	pediatricAgeLimit = 18
	geriatricAgeFloor = 65
)

// Selector implements pipeline.Selector. It is stateless and safe for
// concurrent use.
type Selector struct{}

// NewSelector creates a follow-up question selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Select assembles the follow-up question list for a turn:
//
//  1. condition-and-urgency template, falling back to the generic set
//  2. one probe per recognized symptom
//  3. pediatric or geriatric routing questions when age is known
//  4. any extra candidates contributed by the caller (detector findings)
//
// The merged list is de-duplicated (first mention wins), stably ordered
// by the fixed keyword priority, and capped at MaxQuestions. The result
// is never nil.
func (s *Selector) Select(conditionType string, level pipeline.TriageLevel, symptoms []string, age *int, extras ...string) []string {
	questions := make([]string, 0, MaxQuestions*2)

	if byLevel, ok := conditionTemplates[strings.ToUpper(conditionType)]; ok {
		if qs, ok := byLevel[level]; ok {
			questions = append(questions, qs...)
		} else {
			questions = append(questions, genericQuestions[level]...)
		}
	} else {
		questions = append(questions, genericQuestions[level]...)
	}

	for _, name := range symptoms {
		if probe, ok := symptomProbes[strings.ToLower(name)]; ok {
			questions = append(questions, probe)
		}
	}

	if age != nil {
		switch {
		case *age < pediatricAgeLimit:
			questions = append(questions, pediatricQuestions...)
		case *age >= geriatricAgeFloor:
			questions = append(questions, geriatricQuestions...)
		}
	}

	questions = append(questions, extras...)

	questions = dedupe(questions)
	prioritize(questions)

	if len(questions) > MaxQuestions {
		questions = questions[:MaxQuestions]
	}
	return questions
}

// dedupe removes later duplicates, comparing case-insensitively.
func dedupe(questions []string) []string {
	seen := make(map[string]struct{}, len(questions))
	out := questions[:0]
	for _, q := range questions {
		key := strings.ToLower(strings.TrimSpace(q))
		if _, dup := seen[key]; dup || key == "" {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}
	return out
}

// prioritize stably sorts questions by the first priority keyword they
// contain. Questions matching no keyword rank after all matches and keep
// their insertion order among themselves.
func prioritize(questions []string) {
	rank := func(q string) int {
		lower := strings.ToLower(q)
		for i, kw := range questionPriority {
			if strings.Contains(lower, kw) {
				return i
			}
		}
		return len(questionPriority)
	}
	sort.SliceStable(questions, func(i, j int) bool {
		return rank(questions[i]) < rank(questions[j])
	})
}
