package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/physiz/internal/formula"
)

// ValidationError lists every problem found in a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "catalog validation failed:\n  " + strings.Join(e.Problems, "\n  ")
}

// Validate runs the semantic checks the schema cannot express. It returns
// a *ValidationError describing all problems found, or nil if valid.
func Validate(c *Catalog) error {
	var errs []string

	topicIDs := make(map[string]bool, len(c.Topics))
	templateIDs := make(map[string]string)

	for _, topic := range c.Topics {
		if topic.ID == "" {
			errs = append(errs, "topic with empty ID")
		}
		if topicIDs[topic.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", topic.ID))
		}
		topicIDs[topic.ID] = true

		for _, t := range topic.Templates {
			if owner, ok := templateIDs[t.ID]; ok {
				errs = append(errs, fmt.Sprintf("duplicate template ID %q (topics %q and %q)", t.ID, owner, topic.ID))
			} else {
				templateIDs[t.ID] = topic.ID
			}
			for _, p := range validateTemplate(t) {
				errs = append(errs, fmt.Sprintf("template %q: %s", t.ID, p))
			}
		}
	}

	known := TierKeys()
	for _, key := range sortedKeys(c.Report) {
		if !slices.Contains(known, key) {
			errs = append(errs, fmt.Sprintf("report: unknown tier %q (want one of %s)", key, strings.Join(known, ", ")))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

func validateTemplate(t QuestionTemplate) []string {
	var errs []string

	if t.ID == "" {
		errs = append(errs, "empty ID")
	}
	if t.Level < 1 {
		errs = append(errs, fmt.Sprintf("level must be >= 1, got %d", t.Level))
	}
	if strings.TrimSpace(t.Text) == "" {
		errs = append(errs, "empty text")
	}

	hasFixed := t.FixedAnswer != nil
	hasFormula := t.AnswerFormula != ""
	if hasFixed == hasFormula {
		errs = append(errs, "exactly one of fixedAnswer and answerFormula must be set")
	}

	switch t.Type {
	case TypeMultipleChoice:
		if len(t.WrongFormulas) == 0 && len(t.WrongAnswers) == 0 {
			errs = append(errs, "multiple choice needs wrongFormulas or wrongAnswers")
		}
	case TypeNumeric:
		if len(t.WrongFormulas) > 0 || len(t.WrongAnswers) > 0 {
			errs = append(errs, "numeric questions take no distractors")
		}
		if hasFixed && !HasPlaceholders(*t.FixedAnswer) {
			if _, err := strconv.ParseFloat(strings.TrimSpace(*t.FixedAnswer), 64); err != nil {
				errs = append(errs, fmt.Sprintf("numeric fixedAnswer %q is not a number", *t.FixedAnswer))
			}
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown type %q", t.Type))
	}

	for _, name := range sortedKeys(t.Variables) {
		spec := t.Variables[name]
		switch {
		case spec.Range != nil && len(spec.Values) > 0:
			errs = append(errs, fmt.Sprintf("variable %q sets both values and a range", name))
		case spec.Range != nil:
			if spec.Range.Step <= 0 {
				errs = append(errs, fmt.Sprintf("variable %q: step must be > 0", name))
			}
			if spec.Range.Max < spec.Range.Min {
				errs = append(errs, fmt.Sprintf("variable %q: max %g is below min %g", name, spec.Range.Max, spec.Range.Min))
			}
		case len(spec.Values) == 0:
			errs = append(errs, fmt.Sprintf("variable %q has no values", name))
		}
	}

	// Every placeholder must resolve, or the learner would see {name}.
	check := func(field, text string) {
		for _, name := range Placeholders(text) {
			if _, ok := t.Variables[name]; !ok {
				errs = append(errs, fmt.Sprintf("%s references undeclared variable {%s}", field, name))
			}
		}
	}
	check("text", t.Text)
	if hasFixed {
		check("fixedAnswer", *t.FixedAnswer)
	}
	for i, w := range t.WrongAnswers {
		check(fmt.Sprintf("wrongAnswers[%d]", i), w)
	}

	checkFormula := func(field, src string) {
		expr, err := formula.Parse(src)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", field, err))
			return
		}
		for _, name := range expr.Vars() {
			if _, ok := t.Variables[name]; !ok && !formula.IsConstant(name) {
				errs = append(errs, fmt.Sprintf("%s references undeclared variable %q", field, name))
			}
		}
	}
	if hasFormula {
		checkFormula("answerFormula", t.AnswerFormula)
	}
	for i, f := range t.WrongFormulas {
		checkFormula(fmt.Sprintf("wrongFormulas[%d]", i), f)
	}

	if t.Tolerance != nil && *t.Tolerance < 0 {
		errs = append(errs, fmt.Sprintf("tolerance must be >= 0, got %g", *t.Tolerance))
	}

	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
