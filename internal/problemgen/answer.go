package problemgen

import (
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/physiz/internal/catalog"
)

// epsilon absorbs float noise at the tolerance boundary, so an answer
// exactly tolerance away from the correct one is accepted.
const epsilon = 1e-9

// CheckAnswer compares the learner's input against the correct answer.
// Returns true if the answer is correct. It never panics: empty or
// unparsable input is simply incorrect.
//
// Normalization rules:
// - Whitespace is trimmed
// - For multiple choice: matches an option's 1-based index or its display
//   text (case-insensitive)
// - For numeric: a trailing unit matching the question's unit is ignored,
//   and the value must be within the question's tolerance
func CheckAnswer(learnerAnswer string, question *Question) bool {
	learnerAnswer = strings.TrimSpace(learnerAnswer)
	if learnerAnswer == "" || question == nil {
		return false
	}

	if question.Type == catalog.TypeMultipleChoice {
		return checkMultipleChoice(learnerAnswer, question)
	}

	x, ok := parseNumeric(learnerAnswer, question.Unit)
	if !ok {
		return false
	}
	return WithinTolerance(x, question.Answer.Value, question.Tolerance)
}

// CheckChoice scores a selection by 0-based option index. -1 means
// nothing was selected and is incorrect.
func CheckChoice(idx int, question *Question) bool {
	if question == nil || idx < 0 || idx >= len(question.Options) {
		return false
	}
	return question.Options[idx].IsCorrect
}

// WithinTolerance reports whether |x - want| <= tol.
func WithinTolerance(x, want, tol float64) bool {
	return math.Abs(x-want) <= tol+epsilon
}

// checkMultipleChoice checks the learner's answer against MC options.
func checkMultipleChoice(learnerAnswer string, question *Question) bool {
	// Try matching by index (1-N).
	if idx, err := strconv.Atoi(learnerAnswer); err == nil && idx >= 1 && idx <= len(question.Options) {
		return question.Options[idx-1].IsCorrect
	}

	// Match by text (case-insensitive).
	for _, o := range question.Options {
		if strings.EqualFold(strings.TrimSpace(o.Display), learnerAnswer) {
			return o.IsCorrect
		}
	}
	return false
}

// parseNumeric parses a learner's number, accepting the question's unit
// as a suffix ("19.6 N").
func parseNumeric(s, unit string) (float64, bool) {
	if unit != "" && len(s) >= len(unit) && strings.EqualFold(s[len(s)-len(unit):], unit) {
		s = strings.TrimSpace(s[:len(s)-len(unit)])
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
