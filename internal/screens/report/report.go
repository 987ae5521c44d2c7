package report

import (
	"fmt"
	"math/rand/v2"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/router"
	"github.com/abhisek/physiz/internal/screen"
	"github.com/abhisek/physiz/internal/session"
	"github.com/abhisek/physiz/internal/ui/components"
	"github.com/abhisek/physiz/internal/ui/layout"
	"github.com/abhisek/physiz/internal/ui/theme"
)

// ReportScreen is the report card shown after a finished challenge.
type ReportScreen struct {
	report *session.Report
	tier   catalog.TierDisplay
	quote  string
	title  string
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a ReportScreen. The tier's quote is picked once here so
// redraws don't shuffle it.
func New(r *session.Report, tiers *catalog.Catalog, topicTitle string) *ReportScreen {
	s := &ReportScreen{report: r, title: topicTitle}
	if r == nil {
		return s
	}
	s.tier, _ = tiers.Tier(r.Tier.Key())
	if n := len(s.tier.Quotes); n > 0 {
		s.quote = s.tier.Quotes[rand.IntN(n)]
	}
	return s
}

func (s *ReportScreen) Init() tea.Cmd {
	return nil
}

func (s *ReportScreen) Title() string {
	return "Report Card"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to topics"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// Mood picks the mascot for the tier.
func Mood(t session.Tier) components.MascotMood {
	switch {
	case t >= session.TierAdept:
		return components.MascotCheer
	case t <= session.TierNovice:
		return components.MascotSulk
	}
	return components.MascotIdle
}

func (s *ReportScreen) View(width, height int) string {
	r := s.report
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.RenderMascot(Mood(r.Tier))))
	b.WriteString("\n\n")

	heading := "Challenge complete!"
	if s.title != "" {
		heading = s.title + " complete!"
	}
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), width, heading))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), width,
		fmt.Sprintf("%s  %s", s.tier.Icon, s.tier.Title)))
	b.WriteString("\n")
	if s.quote != "" {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true), width,
			fmt.Sprintf("%q", s.quote)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	stats := fmt.Sprintf("Score: %d/%d        Accuracy: %.0f%%        Time: %d:%02d",
		r.Score, r.Total, r.Accuracy*100, mins, secs)
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text), width, stats))
	b.WriteString("\n")

	barWidth := min(width-8, 50)
	bar := components.NewProgressBar("", r.Accuracy, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Answers"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	for i, a := range r.Answers {
		mark, style := "✗", theme.Incorrect
		if a.IsCorrect {
			mark, style = "✓", theme.Correct
		}
		text := a.Question.Text
		if limit := max(width-30, 20); len([]rune(text)) > limit {
			text = string([]rune(text)[:limit-1]) + "…"
		}
		line := fmt.Sprintf("%s %d. %s", style.Render(mark), i+1, text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
