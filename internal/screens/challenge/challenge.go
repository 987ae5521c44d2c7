package challenge

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/router"
	"github.com/abhisek/physiz/internal/screen"
	"github.com/abhisek/physiz/internal/screens/report"
	"github.com/abhisek/physiz/internal/session"
	"github.com/abhisek/physiz/internal/ui/components"
	"github.com/abhisek/physiz/internal/ui/layout"
)

// ChallengeScreen serves the questions of one challenge, shows feedback
// after each answer and hands over to the report card at the end.
type ChallengeScreen struct {
	arena   *session.Arena
	session *session.ChallengeSession
	tiers   *catalog.Catalog
	title   string

	mc    components.MultiChoice
	input components.TextInput

	showingFeedback bool
	confirmAbandon  bool
	last            session.AnswerRecord
}

var (
	_ screen.Screen          = (*ChallengeScreen)(nil)
	_ screen.KeyHintProvider = (*ChallengeScreen)(nil)
	_ screen.StatusProvider  = (*ChallengeScreen)(nil)
	_ screen.EscapeHandler   = (*ChallengeScreen)(nil)
)

// New creates a ChallengeScreen for a started session. arena may be nil
// when the session is not owned by one.
func New(arena *session.Arena, s *session.ChallengeSession, tiers *catalog.Catalog, topicTitle string) *ChallengeScreen {
	c := &ChallengeScreen{
		arena:   arena,
		session: s,
		tiers:   tiers,
		title:   topicTitle,
	}
	c.setupQuestion()
	return c
}

func (c *ChallengeScreen) Init() tea.Cmd {
	if c.isNumeric() {
		return c.input.Init()
	}
	return nil
}

func (c *ChallengeScreen) Title() string {
	if c.title == "" {
		return "Quiz Arena"
	}
	return c.title
}

// Status shows the running score.
func (c *ChallengeScreen) Status() string {
	return fmt.Sprintf("★ %d/%d", c.session.Score(), c.session.Total())
}

// HandlesEscape is always true: Esc asks before abandoning.
func (c *ChallengeScreen) HandlesEscape() bool {
	return true
}

func (c *ChallengeScreen) KeyHints() []layout.KeyHint {
	switch {
	case c.confirmAbandon:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon"},
			{Key: "N", Description: "Keep going"},
		}
	case c.showingFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case c.isNumeric():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Abandon"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-9", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Abandon"},
	}
}

func (c *ChallengeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		return c.handleKey(kmsg)
	}

	// Cursor blink and other input housekeeping.
	if c.isNumeric() && !c.showingFeedback && !c.confirmAbandon {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c *ChallengeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if c.confirmAbandon {
		switch key {
		case "y", "Y":
			if c.arena != nil {
				c.arena.Abandon()
			}
			return c, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			c.confirmAbandon = false
		}
		return c, nil
	}

	if c.showingFeedback {
		return c.advance()
	}

	if key == "esc" {
		c.confirmAbandon = true
		return c, nil
	}

	q := c.session.Current()
	if q == nil {
		return c, nil
	}

	if !c.isNumeric() {
		c.mc, _ = c.mc.Update(msg)
		if c.mc.Submitted {
			rec, err := c.session.SubmitChoice(c.mc.ChosenIndex)
			return c.answered(rec, err)
		}
		return c, nil
	}

	if key == "enter" {
		if strings.TrimSpace(c.input.Value()) == "" {
			return c, nil
		}
		rec, err := c.session.Submit(c.input.Value())
		if err == nil {
			c.input.Submit(rec.IsCorrect)
		}
		return c.answered(rec, err)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChallengeScreen) answered(rec session.AnswerRecord, err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		return c, nil
	}
	c.last = rec
	c.showingFeedback = true
	return c, nil
}

// advance leaves the feedback view for the next question or, once every
// question is answered, swaps this screen for the report card.
func (c *ChallengeScreen) advance() (screen.Screen, tea.Cmd) {
	c.showingFeedback = false

	if c.session.Phase() == session.PhaseComplete {
		r, err := c.session.Report()
		if err != nil {
			return c, nil
		}
		next := report.New(r, c.tiers, c.title)
		return c, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	c.setupQuestion()
	return c, c.Init()
}

func (c *ChallengeScreen) setupQuestion() {
	q := c.session.Current()
	if q == nil {
		return
	}
	if q.Type == catalog.TypeMultipleChoice {
		labels := make([]string, len(q.Options))
		for i, o := range q.Options {
			labels[i] = o.Display
		}
		c.mc = components.NewMultiChoice(labels, q.CorrectIndex())
		return
	}
	placeholder := "Type your answer..."
	if q.Unit != "" {
		placeholder = fmt.Sprintf("Answer in %s...", q.Unit)
	}
	c.input = components.NewTextInput(placeholder, q.Unit == "", 24)
}

func (c *ChallengeScreen) isNumeric() bool {
	q := c.session.Current()
	if c.showingFeedback {
		q = c.last.Question
	}
	return q != nil && q.Type == catalog.TypeNumeric
}
