package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/cucumber/godog"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/formula"
	"github.com/abhisek/physiz/internal/problemgen"
)

// TestChallengeScenarios runs the challenge feature scenarios.
func TestChallengeScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "challenge",
		ScenarioInitializer: InitializeChallengeScenario,
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{filepath.Join("testdata", "features")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeChallengeScenario wires steps for challenge scenarios.
func InitializeChallengeScenario(ctx *godog.ScenarioContext) {
	state := &challengeScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a numeric template with answer formula "([^"]+)"$`, state.givenNumericTemplate)
	ctx.Step(`^a multiple choice template with answer formula "([^"]+)" and wrong formula "([^"]+)"$`, state.givenMCTemplate)
	ctx.Step(`^(\w+) ranges from (\S+) to (\S+) in steps of (\S+)$`, state.givenRange)
	ctx.Step(`^the generator samples (\w+) = (\S+)$`, state.whenSampled)
	ctx.Step(`^the correct answer is (\S+)$`, state.thenCorrectAnswer)
	ctx.Step(`^the options are (\S+) and (\S+) in some order$`, state.thenOptions)
	ctx.Step(`^exactly one option is correct$`, state.thenOneCorrect)
	ctx.Step(`^a topic "([^"]+)" with (\d+) templates$`, state.givenTopic)
	ctx.Step(`^I start a challenge on "([^"]+)"$`, state.whenStart)
	ctx.Step(`^I answer every question correctly$`, state.whenAnswerCorrectly)
	ctx.Step(`^I answer every question with "([^"]*)"$`, state.whenAnswerWith)
	ctx.Step(`^the challenge has (\d+) questions$`, state.thenQuestionCount)
	ctx.Step(`^the challenge is complete$`, state.thenComplete)
	ctx.Step(`^the score is (\d+) out of (\d+)$`, state.thenScore)
	ctx.Step(`^the tier is "([^"]+)"$`, state.thenTier)
	ctx.Step(`^the challenge fails to start$`, state.thenFailsToStart)
	ctx.Step(`^a score of (\d+) maps to tier "([^"]+)"$`, state.thenScoreMapsTo)
}

type challengeScenarioState struct {
	template catalog.QuestionTemplate
	question *problemgen.Question
	catalog  *catalog.Catalog
	session  *ChallengeSession
	startErr error
}

// reset clears scenario state.
func (s *challengeScenarioState) reset() {
	*s = challengeScenarioState{}
}

func (s *challengeScenarioState) givenNumericTemplate(expr string) error {
	s.template = catalog.QuestionTemplate{
		ID:            "numeric",
		Level:         1,
		Type:          catalog.TypeNumeric,
		Text:          "Compute with {m}",
		AnswerFormula: expr,
		Variables:     map[string]catalog.VariableSpec{},
	}
	return nil
}

func (s *challengeScenarioState) givenMCTemplate(expr, wrong string) error {
	s.template = catalog.QuestionTemplate{
		ID:            "mc",
		Level:         1,
		Type:          catalog.TypeMultipleChoice,
		Text:          "Pick for {m}",
		AnswerFormula: expr,
		WrongFormulas: []string{wrong},
		Variables:     map[string]catalog.VariableSpec{},
	}
	return nil
}

func (s *challengeScenarioState) givenRange(name, lo, hi, step string) error {
	r := catalog.Range{}
	for _, f := range []struct {
		dst *float64
		src string
	}{{&r.Min, lo}, {&r.Max, hi}, {&r.Step, step}} {
		v, err := strconv.ParseFloat(f.src, 64)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	s.template.Variables[name] = catalog.VariableSpec{Range: &r}
	return nil
}

// whenSampled scripts the draw that lands the named range on value.
func (s *challengeScenarioState) whenSampled(name, value string) error {
	spec, ok := s.template.Variables[name]
	if !ok || spec.Range == nil {
		return fmt.Errorf("no range declared for %q", name)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	idx := int(math.Round((v - spec.Range.Min) / spec.Range.Step))

	gen := problemgen.New(&fixedRand{draws: []int{idx}}, nil, problemgen.DefaultConfig())
	s.question, err = gen.Generate(s.template)
	if err != nil {
		return err
	}
	if got := s.question.Assignment[name]; got != formula.Number(v) {
		return fmt.Errorf("sampled %s = %v, want %v", name, got.Display(), v)
	}
	return nil
}

func (s *challengeScenarioState) thenCorrectAnswer(want float64) error {
	if s.question.Answer.Value != want {
		return fmt.Errorf("correct answer = %v, want %v", s.question.Answer.Value, want)
	}
	return nil
}

func (s *challengeScenarioState) thenOptions(a, b float64) error {
	if len(s.question.Options) != 2 {
		return fmt.Errorf("got %d options, want 2", len(s.question.Options))
	}
	got := map[float64]bool{}
	for _, o := range s.question.Options {
		got[o.Value.Value] = true
	}
	if !got[a] || !got[b] {
		return fmt.Errorf("options %v, want {%v, %v}", got, a, b)
	}
	return nil
}

func (s *challengeScenarioState) thenOneCorrect() error {
	n := 0
	for _, o := range s.question.Options {
		if o.IsCorrect {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("%d correct options, want 1", n)
	}
	if s.question.Options[s.question.CorrectIndex()].Value.Value != s.question.Answer.Value {
		return errors.New("the option marked correct is not the answer")
	}
	return nil
}

func (s *challengeScenarioState) givenTopic(id string, n int) error {
	s.catalog = &catalog.Catalog{Version: 1, Topics: []catalog.Topic{testTopic(id, n)}}
	return catalog.Validate(s.catalog)
}

func (s *challengeScenarioState) whenStart(topicID string) error {
	gen := problemgen.New(problemgen.NewRand(11), nil, problemgen.DefaultConfig())
	s.session, s.startErr = Start(context.Background(), s.catalog, gen, problemgen.NewRand(12), topicID, DefaultConfig(), nil)
	return nil
}

func (s *challengeScenarioState) whenAnswerCorrectly() error {
	if s.startErr != nil {
		return s.startErr
	}
	for s.session.Phase() == PhaseInProgress {
		if _, err := s.session.Submit(correctInput(s.session.Current())); err != nil {
			return err
		}
	}
	return nil
}

func (s *challengeScenarioState) whenAnswerWith(raw string) error {
	if s.startErr != nil {
		return s.startErr
	}
	for s.session.Phase() == PhaseInProgress {
		if _, err := s.session.Submit(raw); err != nil {
			return err
		}
	}
	return nil
}

func (s *challengeScenarioState) thenQuestionCount(n int) error {
	if s.startErr != nil {
		return s.startErr
	}
	if got := len(s.session.Questions); got != n {
		return fmt.Errorf("challenge has %d questions, want %d", got, n)
	}
	return nil
}

func (s *challengeScenarioState) thenComplete() error {
	if s.session.Phase() != PhaseComplete {
		return fmt.Errorf("phase = %s, want complete", s.session.Phase())
	}
	return nil
}

func (s *challengeScenarioState) thenScore(score, total int) error {
	if s.session.Score() != score || s.session.Total() != total {
		return fmt.Errorf("score %d/%d, want %d/%d", s.session.Score(), s.session.Total(), score, total)
	}
	return nil
}

func (s *challengeScenarioState) thenTier(key string) error {
	r, err := s.session.Report()
	if err != nil {
		return err
	}
	if r.Tier.Key() != key {
		return fmt.Errorf("tier = %q, want %q", r.Tier.Key(), key)
	}
	return nil
}

func (s *challengeScenarioState) thenFailsToStart() error {
	if !errors.Is(s.startErr, ErrNoQuestions) {
		return fmt.Errorf("start error = %v, want ErrNoQuestions", s.startErr)
	}
	if s.session != nil {
		return errors.New("a session was created")
	}
	return nil
}

func (s *challengeScenarioState) thenScoreMapsTo(score int, key string) error {
	if got := TierFor(score).Key(); got != key {
		return fmt.Errorf("TierFor(%d) = %q, want %q", score, got, key)
	}
	return nil
}
