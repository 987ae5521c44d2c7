package problemgen

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/formula"
)

// Rand is the sampling source. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a PCG-backed source. A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Generator turns templates into questions.
type Generator interface {
	// Generate produces a single question from the template.
	// Returns a validated Question or an error.
	// All configured validators are run before returning.
	Generate(t catalog.QuestionTemplate) (*Question, error)
}

// TemplateGenerator implements Generator by sampling template variables.
type TemplateGenerator struct {
	rng    Rand
	eval   *formula.Evaluator
	config Config
}

var _ Generator = (*TemplateGenerator)(nil)

// New creates a new TemplateGenerator. A nil evaluator gets one that
// discards its failure reports.
func New(rng Rand, eval *formula.Evaluator, cfg Config) *TemplateGenerator {
	if eval == nil {
		eval = formula.NewEvaluator(nil)
	}
	return &TemplateGenerator{rng: rng, eval: eval, config: cfg}
}

// Generate produces a single question for the template.
func (g *TemplateGenerator) Generate(t catalog.QuestionTemplate) (*Question, error) {
	attempts := max(g.config.MaxAttempts, 1)

	var (
		lastErr  *ValidationError
		fallback *Question
	)
	for range attempts {
		q := g.instantiate(t)

		verr := g.validate(q, t)
		if verr == nil {
			return q, nil
		}
		if verr.Advisory {
			fallback = q
			continue
		}
		lastErr = verr
		if !verr.Retryable {
			break
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, fmt.Errorf("template %q: %w", t.ID, lastErr)
}

// validate runs the chain and returns the first hard failure. Advisory
// failures don't stop the chain; the first one is returned only when
// everything else passes.
func (g *TemplateGenerator) validate(q *Question, t catalog.QuestionTemplate) *ValidationError {
	var advisory *ValidationError
	for _, v := range g.config.Validators {
		verr := v.Validate(q, t)
		switch {
		case verr == nil:
		case verr.Advisory:
			if advisory == nil {
				advisory = verr
			}
		default:
			return verr
		}
	}
	return advisory
}

// instantiate samples one assignment and resolves every part of the
// template against it.
func (g *TemplateGenerator) instantiate(t catalog.QuestionTemplate) *Question {
	vars := g.sample(t.Variables)

	q := &Question{
		TemplateID:      t.ID,
		Topic:           t.Topic,
		Level:           t.Level,
		Type:            t.Type,
		Text:            catalog.Substitute(t.Text, vars),
		Unit:            t.Unit,
		Hint:            t.Hint,
		TrapExplanation: t.TrapExplanation,
		Tolerance:       g.config.DefaultTolerance,
		Assignment:      vars,
	}
	if t.Tolerance != nil {
		q.Tolerance = *t.Tolerance
	}

	if t.FixedAnswer != nil {
		q.Answer = literalAnswer(catalog.Substitute(*t.FixedAnswer, vars))
	} else {
		q.Answer = Answer{Value: g.eval.Eval(t.AnswerFormula, vars), Numeric: true}
	}

	if t.Type == catalog.TypeMultipleChoice {
		q.Options = g.options(t, q.Answer, vars)
	}
	return q
}

// sample draws a value for every variable. Names are visited in sorted
// order so a scripted source sees a stable sequence of draws.
func (g *TemplateGenerator) sample(specs map[string]catalog.VariableSpec) formula.Vars {
	vars := make(formula.Vars, len(specs))
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		spec := specs[name]
		switch {
		case spec.Range != nil:
			vars[name] = formula.Number(sampleRange(g.rng, *spec.Range))
		case len(spec.Values) > 0:
			vars[name] = spec.Values[g.rng.IntN(len(spec.Values))]
		}
	}
	return vars
}

// sampleRange picks min + i*step for a uniform i in [0, count).
func sampleRange(rng Rand, r catalog.Range) float64 {
	n := r.Count()
	if n <= 0 {
		return r.Min
	}
	v := r.Min + float64(rng.IntN(n))*r.Step
	return roundTo(v, max(decimals(r.Step), decimals(r.Min)))
}

// decimals counts the digits after the decimal point in the shortest
// representation of f.
func decimals(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// options builds the correct option followed by every distractor, then
// shuffles the list in place.
func (g *TemplateGenerator) options(t catalog.QuestionTemplate, correct Answer, vars formula.Vars) []AnswerOption {
	opts := make([]AnswerOption, 0, 1+len(t.WrongFormulas)+len(t.WrongAnswers))
	opts = append(opts, AnswerOption{
		Value:     correct,
		Display:   correct.Display(t.Unit),
		IsCorrect: true,
	})

	for _, src := range t.WrongFormulas {
		a := Answer{Value: g.eval.Eval(src, vars), Numeric: true}
		opts = append(opts, AnswerOption{Value: a, Display: a.Display(t.Unit)})
	}
	for _, lit := range t.WrongAnswers {
		s := catalog.Substitute(lit, vars)
		opts = append(opts, AnswerOption{Value: Answer{Text: s}, Display: s})
	}

	g.rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}

// literalAnswer keeps a fixed answer numeric when it reads as a number.
func literalAnswer(s string) Answer {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Answer{Value: f, Text: s, Numeric: true}
	}
	return Answer{Text: s}
}

// IsValidationError reports whether err came from the validator chain.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
