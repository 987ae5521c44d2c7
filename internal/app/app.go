package app

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/router"
	"github.com/abhisek/physiz/internal/screen"
	"github.com/abhisek/physiz/internal/screens/arena"
	"github.com/abhisek/physiz/internal/screens/home"
	"github.com/abhisek/physiz/internal/screens/book"
	"github.com/abhisek/physiz/internal/screens/welcome"
	"github.com/abhisek/physiz/internal/session"
	"github.com/abhisek/physiz/internal/textbook"
	"github.com/abhisek/physiz/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Arena   *session.Arena
	Catalog *catalog.Catalog
	Book    *textbook.Book
	Log     *zap.Logger

	// StartArena opens the Quiz Arena above the home screen. With Topic
	// set, a challenge on that topic starts right away.
	StartArena bool
	Topic      string

	// Section opens the textbook reader on that section.
	Section string

	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	init   tea.Cmd
	width  int
	height int
}

// newAppModel builds the screen stack for opts. Deep links skip the
// welcome splash and sit above home so Esc still lands there.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.Book, opts.Arena, opts.Catalog)
	}

	var deepLink screen.Screen
	switch {
	case opts.Section != "":
		deepLink = book.NewReader(book.Deps{
			Book:  opts.Book,
			Arena: opts.Arena,
			Tiers: opts.Catalog,
		}, opts.Section)
	case opts.StartArena || opts.Topic != "":
		deepLink = arena.New(opts.Arena, opts.Catalog, opts.Topic)
	}

	var r *router.Router
	var cmds []tea.Cmd
	if deepLink != nil || opts.SkipWelcome {
		root := homeFactory()
		r = router.New(root)
		cmds = append(cmds, root.Init())
		if deepLink != nil {
			cmds = append(cmds, r.Push(deepLink))
		}
	} else {
		w := welcome.New(homeFactory)
		r = router.New(w)
		cmds = append(cmds, w.Init())
	}

	return AppModel{router: r, init: tea.Batch(cmds...)}
}

func (m AppModel) Init() tea.Cmd {
	return m.init
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Arena == nil || opts.Book == nil {
		return errors.New("app: arena and textbook are required")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	p := tea.NewProgram(newAppModel(opts))
	log.Debug("starting tui", zap.String("section", opts.Section), zap.String("topic", opts.Topic))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
