package challenge

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/physiz/internal/ui/components"
	"github.com/abhisek/physiz/internal/ui/layout"
	"github.com/abhisek/physiz/internal/ui/theme"
)

func (c *ChallengeScreen) View(width, height int) string {
	switch {
	case c.confirmAbandon:
		return renderAbandonConfirm(width)
	case c.showingFeedback:
		return c.renderFeedback(width)
	}
	return c.renderQuestion(width)
}

func (c *ChallengeScreen) renderQuestion(width int) string {
	q := c.session.Current()
	if q == nil {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "\n\n  Challenge complete.")
	}

	var b strings.Builder

	n, total := c.session.Progress()
	bar := components.NewCountBar(fmt.Sprintf("  Question %d", n), n-1, total, min(width-4, 60))
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	level := lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("Level %d", q.Level))
	b.WriteString(layout.Centered(lipgloss.NewStyle(), width, level))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		width,
		lipgloss.NewStyle().Width(min(width-8, 70)).Render(q.Text),
	))
	b.WriteString("\n\n")

	if c.isNumeric() {
		b.WriteString(layout.Centered(lipgloss.NewStyle(), width, "Answer: "+c.input.View()))
		return b.String()
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, c.mc.View()))
	b.WriteString("\n")
	b.WriteString(layout.Centered(
		lipgloss.NewStyle().Foreground(theme.TextDim),
		width,
		fmt.Sprintf("Select (1-%d) or use arrows + Enter", len(q.Options)),
	))
	return b.String()
}

func (c *ChallengeScreen) renderFeedback(width int) string {
	q := c.last.Question
	var b strings.Builder
	b.WriteString("\n\n")

	if c.last.IsCorrect {
		b.WriteString(layout.Centered(theme.Correct, width, "Correct!"))
	} else {
		b.WriteString(layout.Centered(theme.Incorrect, width, "Not quite"))
		b.WriteString("\n")
		answer := c.last.UserAnswer
		if answer == "" {
			answer = "(no answer)"
		}
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
			fmt.Sprintf("You said: %s", answer)))
	}
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text), width,
		fmt.Sprintf("Correct answer: %s", q.CorrectDisplay())))
	b.WriteString("\n\n")

	textWidth := min(width-8, 70)
	if q.Hint != "" {
		hint := lipgloss.NewStyle().Width(textWidth).Foreground(theme.ArcadeCyan).Render("Hint: " + q.Hint)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, hint))
		b.WriteString("\n\n")
	}
	if !c.last.IsCorrect && q.TrapExplanation != "" {
		trap := lipgloss.NewStyle().Width(textWidth).Foreground(theme.Accent).Render("Trap: " + q.TrapExplanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, trap))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Press any key to continue..."))
	return b.String()
}

func renderAbandonConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "Abandon this challenge?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Your answers so far will be discarded."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, "[Y] Yes, abandon"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}
