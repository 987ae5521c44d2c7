package arena

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/router"
	"github.com/abhisek/physiz/internal/screen"
	"github.com/abhisek/physiz/internal/screens/challenge"
	"github.com/abhisek/physiz/internal/session"
	"github.com/abhisek/physiz/internal/ui/components"
	"github.com/abhisek/physiz/internal/ui/layout"
	"github.com/abhisek/physiz/internal/ui/theme"
)

type topicsLoadedMsg struct {
	topics []catalog.Topic
	err    error
}

type challengeStartedMsg struct {
	session *session.ChallengeSession
	title   string
	err     error
}

// TopicSelectScreen is the Quiz Arena lobby: pick a topic, get a challenge.
type TopicSelectScreen struct {
	arena *session.Arena
	tiers *catalog.Catalog

	// autoStart is started as soon as the topics are loaded, once.
	autoStart string

	topics  []catalog.Topic
	menu    components.Menu
	loading bool
	err     error

	// starting is set while a start command is in flight; keys are
	// dropped until its result arrives.
	starting bool
}

var _ screen.Screen = (*TopicSelectScreen)(nil)
var _ screen.KeyHintProvider = (*TopicSelectScreen)(nil)

// New creates the topic selection screen. A non-empty startTopic jumps
// straight into a challenge on that topic.
func New(arena *session.Arena, tiers *catalog.Catalog, startTopic string) *TopicSelectScreen {
	return &TopicSelectScreen{
		arena:     arena,
		tiers:     tiers,
		autoStart: startTopic,
		loading:   true,
	}
}

func (s *TopicSelectScreen) Init() tea.Cmd {
	arena := s.arena
	return func() tea.Msg {
		topics, err := arena.Topics(context.Background())
		return topicsLoadedMsg{topics: topics, err: err}
	}
}

func (s *TopicSelectScreen) Title() string {
	return "Quiz Arena"
}

func (s *TopicSelectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Fight!"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TopicSelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicsLoadedMsg:
		s.loading = false
		s.err = msg.err
		s.topics = msg.topics
		s.menu = components.NewMenu(s.menuItems())
		if s.autoStart != "" && msg.err == nil {
			id := s.autoStart
			s.autoStart = ""
			return s, s.start(id)
		}
		return s, nil

	case challengeStartedMsg:
		s.starting = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.err = nil
		next := challenge.New(s.arena, msg.session, s.tiers, msg.title)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case tea.KeyMsg:
		if s.loading || s.starting {
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *TopicSelectScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(s.topics))
	for _, t := range s.topics {
		id := t.ID
		items = append(items, components.MenuItem{
			Label:  t.Title,
			Detail: templateCount(len(t.Templates)),
			Action: func() tea.Cmd { return s.start(id) },
		})
	}
	return items
}

func (s *TopicSelectScreen) start(topicID string) tea.Cmd {
	if s.starting {
		return nil
	}
	s.starting = true
	arena := s.arena
	title := topicID
	for _, t := range s.topics {
		if t.ID == topicID {
			title = t.Title
		}
	}
	return func() tea.Msg {
		sess, err := arena.Start(context.Background(), topicID)
		return challengeStartedMsg{session: sess, title: title, err: err}
	}
}

func templateCount(n int) string {
	if n == 1 {
		return "1 template"
	}
	return fmt.Sprintf("%d templates", n)
}

func (s *TopicSelectScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), width, "MONSTER PHYSICS"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Pick a topic. Five questions. No mercy."))
	b.WriteString("\n\n")

	if s.loading {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Loading topics..."))
		return b.String()
	}

	if s.err != nil {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, errorText(s.err)))
		b.WriteString("\n\n")
	}

	if len(s.topics) == 0 {
		if s.err == nil {
			b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "No topics in the catalog."))
		}
		return b.String()
	}

	if s.starting {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Summoning the monster..."))
		b.WriteString("\n\n")
	}

	cw := components.ContentWidth(width)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(s.menu.View(), min(cw, 50), theme.ArcadeCyan)))
	return b.String()
}

func errorText(err error) string {
	switch {
	case errors.Is(err, session.ErrNoQuestions):
		return "This topic has no questions ready yet. Try another one."
	case errors.Is(err, catalog.ErrUnavailable):
		return "The question catalog could not be loaded."
	}
	return err.Error()
}
