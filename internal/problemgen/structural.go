package problemgen

import (
	"math"
	"strings"

	"github.com/abhisek/physiz/internal/catalog"
)

// StructuralValidator checks that the question text is present and fully
// resolved.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ catalog.QuestionTemplate) *ValidationError {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text is empty",
		}
	}
	if catalog.HasPlaceholders(q.Text) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text has unresolved placeholders: " + strings.Join(catalog.Placeholders(q.Text), ", "),
		}
	}
	for _, o := range q.Options {
		if catalog.HasPlaceholders(o.Display) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "option " + o.Display + " has unresolved placeholders",
			}
		}
	}
	if q.Type != catalog.TypeNumeric && q.Type != catalog.TypeMultipleChoice {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "type must be \"numeric\" or \"multiple_choice\"",
		}
	}
	if q.Tolerance < 0 || math.IsNaN(q.Tolerance) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "tolerance must be a non-negative number",
		}
	}
	return nil
}

// OptionsValidator checks the answer shape for each question type:
// multiple choice has at least two options with exactly one correct,
// numeric has a finite numeric answer and no options. Options that
// render alike are reported as advisory.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Question, _ catalog.QuestionTemplate) *ValidationError {
	switch q.Type {
	case catalog.TypeMultipleChoice:
		if len(q.Options) < 2 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "multiple choice needs at least 2 options",
			}
		}
		correct := 0
		for _, o := range q.Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "multiple choice needs exactly one correct option",
			}
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			key := strings.ToLower(strings.TrimSpace(o.Display))
			if seen[key] {
				// Another sample usually separates the values.
				return &ValidationError{
					Validator: v.Name(),
					Message:   "duplicate option " + o.Display,
					Retryable: true,
					Advisory:  true,
				}
			}
			seen[key] = true
		}

	case catalog.TypeNumeric:
		if len(q.Options) > 0 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "numeric questions have no options",
			}
		}
		if !q.Answer.Numeric || math.IsNaN(q.Answer.Value) || math.IsInf(q.Answer.Value, 0) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "numeric questions need a finite numeric answer",
			}
		}
	}
	return nil
}
