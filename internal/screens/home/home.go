package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/router"
	"github.com/abhisek/physiz/internal/screen"
	"github.com/abhisek/physiz/internal/screens/arena"
	"github.com/abhisek/physiz/internal/screens/book"
	"github.com/abhisek/physiz/internal/session"
	"github.com/abhisek/physiz/internal/textbook"
	"github.com/abhisek/physiz/internal/ui/components"
)

// Stats are the counts shown in the home screen's stats bar.
type Stats struct {
	Topics      int
	Sections    int
	Derivations int
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string
	stats      Stats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(tb *textbook.Book, a *session.Arena, tiers *catalog.Catalog) *HomeScreen {
	menuLabels := []string{"QUIZ ARENA", "TEXTBOOK", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: arena.New(a, tiers, "")}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: book.NewContents(book.Deps{
					Book:  tb,
					Arena: a,
					Tiers: tiers,
				})}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		stats:      computeStats(tb, tiers),
	}
}

func computeStats(tb *textbook.Book, tiers *catalog.Catalog) Stats {
	var st Stats
	if tiers != nil {
		st.Topics = len(tiers.Topics)
	}
	if tb != nil {
		for _, t := range tb.Topics() {
			st.Sections += len(t.Sections)
		}
		st.Derivations = len(tb.Derivations())
	}
	return st
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if compact && termHeight < 24 {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
