package problemgen

import (
	"fmt"

	"github.com/abhisek/physiz/internal/catalog"
)

// Validator checks a generated question for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "structural", "options".
	Name() string

	// Validate checks the question and returns nil if it passes.
	// Returns a ValidationError if the question fails the check.
	// The validator receives the template the question came from.
	Validate(q *Question, t catalog.QuestionTemplate) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether resampling the template is likely to fix this

	// Advisory marks a question that is usable as generated. The
	// generator resamples to improve it, but keeps the last advisory
	// question rather than failing the template.
	Advisory bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
