package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidContext wraps validation failures in strict mode.
var ErrInvalidContext = errors.New("invalid context")

// ValidationError describes a single schema violation inside a Context.
type ValidationError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Path, e.Message, e.Code)
}

// Validation codes.
const (
	CodeMissing     = "missing"
	CodeInvalidUTF8 = "invalid_utf8"
	CodeOutOfRange  = "out_of_range"
	CodeBadEnum     = "bad_enum"
)

// Validate checks the Context against its schema and returns every
// violation found. In lenient mode (strict=false) repairable issues are
// fixed in place (locations normalized, missing slices allocated) and
// only unrepairable ones are reported. In strict mode nothing is
// repaired and the full list is returned wrapped in ErrInvalidContext.
func (c *Context) Validate(strict bool) ([]ValidationError, error) {
	var errs []ValidationError

	if c.RawInput == "" {
		errs = append(errs, ValidationError{
			Path: "raw_input", Code: CodeMissing, Message: "raw input is required",
		})
	} else if !utf8.ValidString(c.RawInput) {
		errs = append(errs, ValidationError{
			Path: "raw_input", Code: CodeInvalidUTF8, Message: "raw input is not valid UTF-8",
		})
	}

	if c.Intent != nil {
		if c.Intent.Confidence < 0 || c.Intent.Confidence > 1 {
			errs = append(errs, ValidationError{
				Path:    "intent.confidence",
				Code:    CodeOutOfRange,
				Message: fmt.Sprintf("confidence %.3f outside [0,1]", c.Intent.Confidence),
			})
		}
	}

	for i := range c.Symptoms {
		s := &c.Symptoms[i]
		if s.Name == "" {
			errs = append(errs, ValidationError{
				Path: fmt.Sprintf("symptoms[%d].name", i), Code: CodeMissing,
				Message: "symptom name is required",
			})
		}
		if NormalizeLocation(s.Location) != s.Location {
			if strict {
				errs = append(errs, ValidationError{
					Path: fmt.Sprintf("symptoms[%d].location", i), Code: CodeBadEnum,
					Message: fmt.Sprintf("unknown body location %q", s.Location),
				})
			} else {
				s.Location = LocationUnspecified
			}
		}
	}

	if c.Demographics.Age != nil {
		if age := *c.Demographics.Age; age < 0 || age > 130 {
			errs = append(errs, ValidationError{
				Path: "demographics.age", Code: CodeOutOfRange,
				Message: fmt.Sprintf("age %d outside [0,130]", age),
			})
		}
	}

	if strict && len(errs) > 0 {
		return errs, fmt.Errorf("%w: %s", ErrInvalidContext, summarize(errs))
	}
	return errs, nil
}

// summarize joins violation paths for the strict-mode error message.
func summarize(errs []ValidationError) string {
	paths := make([]string, 0, len(errs))
	for _, e := range errs {
		paths = append(paths, e.Path)
	}
	return strings.Join(paths, ", ")
}
