package textscan

import (
	"strings"
)

// Default lookbehind window: the last few words before a phrase, capped
// by a character budget. Roughly "five words / forty characters" of
// English text. Both values are tuned heuristics with no derivation;
// override them with the options when experimenting.
const (
	DefaultNegationWindowWords = 5
	DefaultNegationWindowChars = 40
)

// negationTokens are the cues that flip a phrase to negated when they
// appear inside the lookbehind window.
var negationTokens = map[string]struct{}{
	"no": {}, "not": {}, "without": {}, "never": {},
	"don't": {}, "doesn't": {}, "haven't": {}, "didn't": {}, "isn't": {},
}

// negationOptions holds tunables for NegationPredicate.
type negationOptions struct {
	words int
	chars int
}

// Option configures NegationPredicate.
type Option func(*negationOptions)

// WithNegationWindowWords overrides how many words before the phrase are
// inspected. Values <= 0 fall back to the default.
func WithNegationWindowWords(words int) Option {
	return func(o *negationOptions) {
		if words > 0 {
			o.words = words
		}
	}
}

// WithNegationWindowChars overrides the character cap on the window.
// Values <= 0 fall back to the default.
func WithNegationWindowChars(chars int) Option {
	return func(o *negationOptions) {
		if chars > 0 {
			o.chars = chars
		}
	}
}

// NegationPredicate returns a closure that reports whether a phrase is
// negated in text. The check locates the first occurrence of the phrase
// and scans the words immediately preceding it (bounded by the word and
// character windows) for negation tokens.
//
// This is a windowed heuristic, not a dependency parse: long-distance
// negation ("I have none of the symptoms, except a headache") produces
// false positives and negatives. Callers must not treat the result as
// authoritative; the pipeline resolves ambiguity conservatively
// downstream.
//
// A phrase absent from the text is reported as not negated.
func NegationPredicate(text string, opts ...Option) func(phrase string) bool {
	o := negationOptions{
		words: DefaultNegationWindowWords,
		chars: DefaultNegationWindowChars,
	}
	for _, opt := range opts {
		opt(&o)
	}

	lower := strings.ToLower(text)

	return func(phrase string) bool {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase == "" {
			return false
		}

		idx := indexOfPhrase(lower, phrase)
		if idx < 0 {
			return false
		}

		// Apply the character cap first, then keep the last N words.
		start := idx - o.chars
		if start < 0 {
			start = 0
		}
		words := strings.Fields(lower[start:idx])
		if len(words) > o.words {
			words = words[len(words)-o.words:]
		}

		for _, tok := range words {
			tok = strings.Trim(tok, ".,;:!?()\"'")
			if _, ok := negationTokens[tok]; ok {
				return true
			}
		}
		return false
	}
}

// indexOfPhrase finds the first occurrence of phrase in lower with
// word-ish boundaries, preferring the space-padded form so "fever"
// does not match inside "feverish".
func indexOfPhrase(lower, phrase string) int {
	if idx := strings.Index(lower, " "+phrase+" "); idx >= 0 {
		return idx + 1
	}
	if strings.HasPrefix(lower, phrase+" ") {
		return 0
	}
	if strings.HasSuffix(lower, " "+phrase) {
		return len(lower) - len(phrase)
	}
	if lower == phrase {
		return 0
	}
	// Fall back to a plain substring match for phrases adjacent to
	// punctuation ("no fever, just chills").
	return strings.Index(lower, phrase)
}
