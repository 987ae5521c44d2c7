package session

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/physiz/internal/problemgen"
)

// Phase is where a challenge stands.
type Phase int

const (
	PhaseSelecting  Phase = iota // No challenge yet; picking a topic
	PhaseInProgress              // Serving questions
	PhaseComplete                // Every question answered; report available
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhaseInProgress:
		return "in-progress"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	// ErrNoQuestions means a challenge could not start because the topic
	// produced no usable questions.
	ErrNoQuestions = errors.New("cannot start challenge")

	// ErrSessionComplete is returned when answering a finished challenge.
	ErrSessionComplete = errors.New("challenge is already complete")

	// ErrNotComplete is returned when asking for the report too early.
	ErrNotComplete = errors.New("challenge is not complete")
)

// Config controls challenge construction.
type Config struct {
	// QuestionsPerChallenge caps the number of questions. Topics with
	// fewer templates yield shorter challenges.
	QuestionsPerChallenge int
}

// DefaultConfig returns the standard five-question challenge.
func DefaultConfig() Config {
	return Config{QuestionsPerChallenge: 5}
}

// ChallengeSession is one run through a topic's questions. It is owned
// by its caller; nothing in this package holds on to it.
type ChallengeSession struct {
	// ID is a UUID identifying this challenge in logs and reports.
	ID string

	// TopicID is the catalog topic the questions were drawn from.
	TopicID string

	// Questions is fixed at start.
	Questions []*problemgen.Question

	// CurrentIndex only moves forward, one step per submitted answer.
	CurrentIndex int

	// Answers has one record per submitted answer, in order.
	Answers []AnswerRecord

	StartedAt   time.Time
	CompletedAt time.Time

	log *zap.Logger
	now func() time.Time
}

// AnswerRecord is one scored submission.
type AnswerRecord struct {
	Question   *problemgen.Question
	UserAnswer string
	IsCorrect  bool
}
