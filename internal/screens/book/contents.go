package book

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/router"
	"github.com/abhisek/physiz/internal/screen"
	"github.com/abhisek/physiz/internal/session"
	"github.com/abhisek/physiz/internal/textbook"
	"github.com/abhisek/physiz/internal/ui/components"
	"github.com/abhisek/physiz/internal/ui/layout"
	"github.com/abhisek/physiz/internal/ui/theme"
)

// Deps are what the textbook screens need to hand off to the Quiz Arena.
type Deps struct {
	Book  *textbook.Book
	Arena *session.Arena
	Tiers *catalog.Catalog
}

// ContentsScreen is the table of contents: topics with their sections.
type ContentsScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*ContentsScreen)(nil)
var _ screen.KeyHintProvider = (*ContentsScreen)(nil)

// NewContents creates the table of contents.
func NewContents(deps Deps) *ContentsScreen {
	s := &ContentsScreen{deps: deps}

	var items []components.MenuItem
	for i, t := range deps.Book.Topics() {
		items = append(items, components.MenuItem{
			Label:    fmt.Sprintf("%d. %s", i+1, strings.ToUpper(t.Title)),
			Disabled: true,
		})
		for _, sec := range t.Sections {
			id := sec.ID
			detail := ""
			if sec.Quiz != "" {
				detail = "quiz"
			}
			items = append(items, components.MenuItem{
				Label:  "  " + sec.Title,
				Detail: detail,
				Action: func() tea.Cmd {
					return func() tea.Msg {
						return router.PushScreenMsg{Screen: NewReader(deps, id)}
					}
				},
			})
		}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *ContentsScreen) Init() tea.Cmd {
	return nil
}

func (s *ContentsScreen) Title() string {
	return "Textbook"
}

func (s *ContentsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Read"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ContentsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ContentsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), width, "TABLE OF CONTENTS"))
	b.WriteString("\n\n")

	// Keep the selection on screen for long books.
	lines := strings.Split(strings.TrimSuffix(s.menu.View(), "\n"), "\n")
	avail := max(height-4, 3)
	start := 0
	if s.menu.Selected >= avail {
		start = s.menu.Selected - avail + 1
	}
	end := min(start+avail, len(lines))

	block := lipgloss.NewStyle().Width(min(width-4, 60)).Render(strings.Join(lines[start:end], "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	return b.String()
}
