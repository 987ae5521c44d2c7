package book

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/physiz/internal/router"
	"github.com/abhisek/physiz/internal/screen"
	"github.com/abhisek/physiz/internal/screens/arena"
	"github.com/abhisek/physiz/internal/textbook"
	"github.com/abhisek/physiz/internal/ui/layout"
	"github.com/abhisek/physiz/internal/ui/markdown"
	"github.com/abhisek/physiz/internal/ui/theme"
)

// ReaderScreen shows one section, with its conceptual questions and
// derivations on demand.
type ReaderScreen struct {
	deps    Deps
	section textbook.Section
	found   bool

	derivations []textbook.Derivation

	// derivation is the index of the open derivation overlay, -1 if closed.
	derivation    int
	showQuestions bool
	scrollOffset  int
	notice        string

	// Rendered lines, cached per width.
	lines      []string
	linesWidth int
}

var (
	_ screen.Screen          = (*ReaderScreen)(nil)
	_ screen.KeyHintProvider = (*ReaderScreen)(nil)
	_ screen.StatusProvider  = (*ReaderScreen)(nil)
	_ screen.EscapeHandler   = (*ReaderScreen)(nil)
)

// NewReader opens the section with the given ID.
func NewReader(deps Deps, sectionID string) *ReaderScreen {
	r := &ReaderScreen{deps: deps, derivation: -1}
	r.open(sectionID)
	return r
}

func (r *ReaderScreen) open(id string) {
	r.section, r.found = r.deps.Book.FindSection(id)
	r.derivations = r.deps.Book.SectionDerivations(id)
	r.derivation = -1
	r.showQuestions = false
	r.scrollOffset = 0
	r.notice = ""
	r.lines = nil
}

func (r *ReaderScreen) Init() tea.Cmd {
	return nil
}

func (r *ReaderScreen) Title() string {
	if !r.found {
		return "Textbook"
	}
	return r.section.Title
}

// Status shows where the section sits in the book.
func (r *ReaderScreen) Status() string {
	return r.topicTitle()
}

// HandlesEscape is true while an overlay is open so Esc closes it
// instead of leaving the reader.
func (r *ReaderScreen) HandlesEscape() bool {
	return r.derivation >= 0
}

func (r *ReaderScreen) KeyHints() []layout.KeyHint {
	if r.derivation >= 0 {
		return []layout.KeyHint{
			{Key: "d", Description: "Next derivation"},
			{Key: "Esc", Description: "Close"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "n/p", Description: "Next/Prev"},
		{Key: "q", Description: "Questions"},
	}
	if len(r.derivations) > 0 {
		hints = append(hints, layout.KeyHint{Key: "d", Description: "Derivations"})
	}
	if _, ok := r.deps.Book.SectionQuiz(r.section.ID); ok {
		hints = append(hints, layout.KeyHint{Key: "a", Description: "Quiz"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (r *ReaderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	key := kmsg.String()

	if r.derivation >= 0 {
		switch key {
		case "esc":
			r.derivation = -1
		case "d", "right", "l":
			r.derivation = (r.derivation + 1) % len(r.derivations)
		case "left", "h":
			r.derivation = (r.derivation + len(r.derivations) - 1) % len(r.derivations)
		}
		return r, nil
	}

	r.notice = ""
	switch key {
	case "up", "k":
		r.scrollOffset = max(r.scrollOffset-1, 0)
	case "down", "j":
		r.scrollOffset++
	case "pgup":
		r.scrollOffset = max(r.scrollOffset-10, 0)
	case "pgdown", "space":
		r.scrollOffset += 10
	case "home", "g":
		r.scrollOffset = 0
	case "n":
		if next, ok := r.deps.Book.Next(r.section.ID); ok {
			r.open(next.ID)
		} else {
			r.notice = "This is the last section."
		}
	case "p":
		if prev, ok := r.deps.Book.Prev(r.section.ID); ok {
			r.open(prev.ID)
		} else {
			r.notice = "This is the first section."
		}
	case "q":
		r.showQuestions = !r.showQuestions
		r.lines = nil
	case "d":
		if len(r.derivations) == 0 {
			r.notice = "No derivations for this section."
			return r, nil
		}
		r.derivation = 0
	case "a":
		return r, r.startQuiz()
	}
	return r, nil
}

func (r *ReaderScreen) startQuiz() tea.Cmd {
	topic, ok := r.deps.Book.SectionQuiz(r.section.ID)
	if !ok || r.deps.Arena == nil {
		r.notice = "No quiz for this section."
		return nil
	}
	next := arena.New(r.deps.Arena, r.deps.Tiers, topic)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (r *ReaderScreen) topicTitle() string {
	for _, t := range r.deps.Book.Topics() {
		if t.ID == r.section.Topic {
			return t.Title
		}
	}
	return ""
}

func (r *ReaderScreen) View(width, height int) string {
	if !r.found {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, "\n\nSection not found.")
	}
	if r.derivation >= 0 {
		return r.renderDerivation(width, height)
	}

	textWidth := min(width-6, 90)
	if r.lines == nil || r.linesWidth != textWidth {
		r.lines = r.render(textWidth)
		r.linesWidth = textWidth
	}

	// Two rows for the position line.
	avail := max(height-2, 1)
	r.scrollOffset = min(r.scrollOffset, max(len(r.lines)-avail, 0))
	end := min(r.scrollOffset+avail, len(r.lines))

	var b strings.Builder
	pad := strings.Repeat(" ", max((width-textWidth)/2, 0))
	for _, l := range r.lines[r.scrollOffset:end] {
		b.WriteString(pad + l + "\n")
	}
	for i := end - r.scrollOffset; i < avail; i++ {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.footerLine(width, avail))
	return b.String()
}

func (r *ReaderScreen) footerLine(width, avail int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if r.notice != "" {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Accent), width, r.notice)
	}
	pct := 100
	if over := len(r.lines) - avail; over > 0 {
		pct = r.scrollOffset * 100 / over
	}
	return layout.Centered(dim, width, fmt.Sprintf("%d%%", pct))
}

func (r *ReaderScreen) render(width int) []string {
	lines := markdown.Render(r.section.Content, width)

	if !r.showQuestions {
		if len(r.section.Questions) > 0 {
			lines = append(lines, "", theme.Hint.Render(fmt.Sprintf("Press q for %d questions to think about.", len(r.section.Questions))))
		}
		return lines
	}

	lines = append(lines, "", theme.Heading.Render("Questions to think about"), "")
	if len(r.section.Questions) == 0 {
		return append(lines, theme.Hint.Render("No questions for this section."))
	}
	for i, q := range r.section.Questions {
		prefix := fmt.Sprintf("%d. ", i+1)
		for j, l := range strings.Split(lipgloss.NewStyle().Width(width-len(prefix)).Render(q.Text), "\n") {
			if j == 0 {
				lines = append(lines, theme.Body.Bold(true).Render(prefix)+l)
			} else {
				lines = append(lines, strings.Repeat(" ", len(prefix))+l)
			}
		}
		if q.Hint != "" {
			hint := lipgloss.NewStyle().Width(width - len(prefix)).Render("Hint: " + q.Hint)
			for _, l := range strings.Split(hint, "\n") {
				lines = append(lines, strings.Repeat(" ", len(prefix))+theme.Hint.Render(l))
			}
		}
		lines = append(lines, "")
	}
	return lines
}

func (r *ReaderScreen) renderDerivation(width, height int) string {
	d := r.derivations[r.derivation]
	inner := min(width-10, 80)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(d.Title))
	if len(r.derivations) > 1 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("  (%d/%d)", r.derivation+1, len(r.derivations))))
	}
	b.WriteString("\n\n")
	if d.Intro != "" {
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(markdown.Inline(d.Intro)))
		b.WriteString("\n\n")
	}
	for i, st := range d.Steps {
		b.WriteString(theme.Heading.Render(fmt.Sprintf("Step %d: %s", i+1, st.Title)))
		b.WriteString("\n")
		if st.Text != "" {
			b.WriteString(lipgloss.NewStyle().Width(inner).Render(markdown.Inline(st.Text)))
			b.WriteString("\n")
		}
		if st.Equation != "" {
			b.WriteString("    " + theme.Equation.Render(st.Equation))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	box := theme.Overlay.Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
