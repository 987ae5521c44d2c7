package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/physiz/internal/ui/components"
	"github.com/abhisek/physiz/internal/ui/theme"
)

// renderTitle returns the block-letter title or the compact fallback.
func renderTitle(cw int, compact bool) string {
	bw := cw
	if compact {
		bw = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(components.RenderBanner(bw, theme.ArcadeYellow))
}

// renderStatsBar renders the book and arena counts in a bordered box
// matching content width.
func renderStatsBar(st Stats, cw int, compact bool) string {
	topicStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	derivStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			topicStyle.Render(fmt.Sprintf("⚔%d", st.Topics)),
			sectionStyle.Render(fmt.Sprintf("§%d", st.Sections)),
			derivStyle.Render(fmt.Sprintf("∂%d", st.Derivations)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			topicStyle.Render(fmt.Sprintf("⚔ %d ARENAS", st.Topics)),
			sectionStyle.Render(fmt.Sprintf("§ %d SECTIONS", st.Sections)),
			derivStyle.Render(fmt.Sprintf("∂ %d DERIVATIONS", st.Derivations)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as plain lines for very
// small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderMascotBox(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(components.RenderMascot(components.MascotIdle))
}
