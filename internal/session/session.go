package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/problemgen"
)

// Start builds a new challenge for a topic: it shuffles the topic's
// templates, keeps the first QuestionsPerChallenge, and generates one
// question from each. Templates that fail generation are skipped.
//
// A source failure is logged and treated as an empty topic. When no
// question survives, Start returns ErrNoQuestions.
func Start(ctx context.Context, src catalog.Source, gen problemgen.Generator, rng problemgen.Rand, topicID string, cfg Config, log *zap.Logger) (*ChallengeSession, error) {
	if log == nil {
		log = zap.NewNop()
	}
	n := cfg.QuestionsPerChallenge
	if n <= 0 {
		n = DefaultConfig().QuestionsPerChallenge
	}

	templates, err := src.Templates(ctx, topicID)
	if err != nil {
		log.Warn("template source failed, treating topic as empty",
			zap.String("topic", topicID),
			zap.Error(err),
		)
		templates = nil
	}

	rng.Shuffle(len(templates), func(i, j int) {
		templates[i], templates[j] = templates[j], templates[i]
	})
	if len(templates) > n {
		templates = templates[:n]
	}

	questions := make([]*problemgen.Question, 0, len(templates))
	for _, t := range templates {
		q, err := gen.Generate(t)
		if err != nil {
			log.Warn("skipping template",
				zap.String("topic", topicID),
				zap.String("template", t.ID),
				zap.Error(err),
			)
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: topic %q has no usable questions", ErrNoQuestions, topicID)
	}

	s := NewChallenge(topicID, questions, log)
	log.Debug("challenge started",
		zap.String("session_id", s.ID),
		zap.String("topic", topicID),
		zap.Int("questions", len(questions)),
	)
	return s, nil
}

// NewChallenge wraps already generated questions in a session. Start is
// the usual way in; this is for callers that build questions themselves.
func NewChallenge(topicID string, questions []*problemgen.Question, log *zap.Logger) *ChallengeSession {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ChallengeSession{
		ID:        uuid.New().String(),
		TopicID:   topicID,
		Questions: questions,
		log:       log,
		now:       time.Now,
	}
	s.StartedAt = s.now()
	return s
}

// Phase returns InProgress until every question has an answer.
func (s *ChallengeSession) Phase() Phase {
	if len(s.Answers) >= len(s.Questions) {
		return PhaseComplete
	}
	return PhaseInProgress
}

// Current returns the question awaiting an answer, or nil once complete.
func (s *ChallengeSession) Current() *problemgen.Question {
	if s.Phase() == PhaseComplete {
		return nil
	}
	return s.Questions[s.CurrentIndex]
}

// Progress returns the 1-based number of the current question and the
// total. A complete session reports total, total.
func (s *ChallengeSession) Progress() (int, int) {
	total := len(s.Questions)
	if s.Phase() == PhaseComplete {
		return total, total
	}
	return s.CurrentIndex + 1, total
}

// Submit scores raw input for the current question. Multiple choice
// accepts a 1-based option number or the option text; numeric accepts a
// number within the question's tolerance. Unparsable input is scored as
// incorrect, never rejected.
func (s *ChallengeSession) Submit(raw string) (AnswerRecord, error) {
	q := s.Current()
	if q == nil {
		return AnswerRecord{}, ErrSessionComplete
	}
	return s.record(raw, problemgen.CheckAnswer(raw, q)), nil
}

// SubmitChoice scores a multiple-choice selection by 0-based index and
// records the option's text. -1 records an empty selection, which is
// incorrect.
func (s *ChallengeSession) SubmitChoice(idx int) (AnswerRecord, error) {
	q := s.Current()
	if q == nil {
		return AnswerRecord{}, ErrSessionComplete
	}
	raw := ""
	if idx >= 0 && idx < len(q.Options) {
		raw = q.Options[idx].Display
	}
	return s.record(raw, problemgen.CheckChoice(idx, q)), nil
}

func (s *ChallengeSession) record(raw string, correct bool) AnswerRecord {
	rec := AnswerRecord{
		Question:   s.Questions[s.CurrentIndex],
		UserAnswer: raw,
		IsCorrect:  correct,
	}
	s.Answers = append(s.Answers, rec)

	if len(s.Answers) == len(s.Questions) {
		s.CompletedAt = s.now()
		s.log.Info("challenge complete",
			zap.String("session_id", s.ID),
			zap.String("topic", s.TopicID),
			zap.Int("score", s.Score()),
			zap.Int("total", s.Total()),
		)
		return rec
	}
	s.CurrentIndex++
	return rec
}

// Score counts correct answers so far.
func (s *ChallengeSession) Score() int {
	n := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// Total is the number of answers recorded so far.
func (s *ChallengeSession) Total() int {
	return len(s.Answers)
}

// Report summarizes a complete challenge.
func (s *ChallengeSession) Report() (*Report, error) {
	return BuildReport(s)
}
