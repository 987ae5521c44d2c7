package problemgen

import (
	"math"
	"strconv"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/formula"
)

// Question is one concrete, fully resolved instance of a template.
// It is read-only once generated.
type Question struct {
	// TemplateID is the template this question was generated from.
	TemplateID string

	// Topic is the catalog topic of the template.
	Topic string

	// Level is the template's difficulty level (1 = easiest).
	Level int

	// Type indicates how the learner answers this question.
	Type catalog.QuestionType

	// Text is the prompt with every placeholder substituted,
	// e.g. "What net force accelerates a 4 kg box at 2.5 m/s²?"
	Text string

	// Answer is the correct answer.
	Answer Answer

	// Options is populated only for multiple choice. Exactly one
	// option has IsCorrect set.
	Options []AnswerOption

	// Tolerance is the largest absolute error a numeric answer may
	// have and still count as correct. Always set.
	Tolerance float64

	// Unit is appended to numeric displays. May be empty.
	Unit string

	// Hint and TrapExplanation are shown after the learner answers.
	Hint            string
	TrapExplanation string

	// Assignment holds the sampled value of every template variable.
	// The same assignment feeds the text, the answer and every distractor.
	Assignment formula.Vars
}

// Answer is a correct answer or a distractor value.
type Answer struct {
	Value   float64
	Text    string
	Numeric bool
}

// Display renders the answer the way it appears in an option list:
// numbers rounded to two decimals with the unit appended, text as is.
func (a Answer) Display(unit string) string {
	if !a.Numeric {
		return a.Text
	}
	s := FormatNumber(a.Value)
	if unit != "" {
		s += " " + unit
	}
	return s
}

// AnswerOption is one entry of a multiple-choice list.
type AnswerOption struct {
	Value     Answer
	Display   string
	IsCorrect bool
}

// CorrectIndex returns the 0-based index of the correct option, or -1
// for questions without options.
func (q *Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}

// CorrectDisplay is the correct answer as the learner should see it.
func (q *Question) CorrectDisplay() string {
	if i := q.CorrectIndex(); i >= 0 {
		return q.Options[i].Display
	}
	return q.Answer.Display(q.Unit)
}

// FormatNumber rounds v to two decimals and drops trailing zeros.
func FormatNumber(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		// Avoid "-0".
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
