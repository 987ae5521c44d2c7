package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/problemgen"
)

// Arena owns the single active challenge for one learner. Starting a new
// challenge discards the previous one; nothing else is kept.
type Arena struct {
	src    catalog.Source
	gen    problemgen.Generator
	rng    problemgen.Rand
	config Config
	log    *zap.Logger

	active *ChallengeSession
}

// NewArena creates an Arena with no active challenge.
func NewArena(src catalog.Source, gen problemgen.Generator, rng problemgen.Rand, cfg Config, log *zap.Logger) *Arena {
	if log == nil {
		log = zap.NewNop()
	}
	return &Arena{src: src, gen: gen, rng: rng, config: cfg, log: log.Named("arena")}
}

// Start begins a challenge on topicID. Any previous challenge is dropped
// first, so a failed start leaves the arena in Selecting.
func (a *Arena) Start(ctx context.Context, topicID string) (*ChallengeSession, error) {
	if a.active != nil && a.active.Phase() != PhaseComplete {
		a.log.Debug("discarding unfinished challenge", zap.String("session_id", a.active.ID))
	}
	a.active = nil

	s, err := Start(ctx, a.src, a.gen, a.rng, topicID, a.config, a.log)
	if err != nil {
		return nil, err
	}
	a.active = s
	return s, nil
}

// Active returns the current challenge, or nil.
func (a *Arena) Active() *ChallengeSession {
	return a.active
}

// Abandon drops the current challenge without a report.
func (a *Arena) Abandon() {
	a.active = nil
}

// Phase reports Selecting when no challenge is active.
func (a *Arena) Phase() Phase {
	if a.active == nil {
		return PhaseSelecting
	}
	return a.active.Phase()
}

// Topics lists the topics a challenge can be started on.
func (a *Arena) Topics(ctx context.Context) ([]catalog.Topic, error) {
	topics, err := a.src.ListTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}
