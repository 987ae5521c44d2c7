package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/physiz/internal/ui/theme"
)

// MascotMood selects which monster art to display.
type MascotMood int

const (
	MascotIdle    MascotMood = iota // Default purple
	MascotCheer                     // Gold, star eyes: a strong result
	MascotSulk                      // Orange, droopy: a weak result
)

const mascotIdle = ` ╱╲     ╱╲
┌─────────┐
│  ◉   ◉  │
│   ▼▼▼   │
│  F=ma   │
└─┬─────┬─┘`

const mascotCheer = ` ╱╲  ★  ╱╲
┌─────────┐
│  ★   ★  │
│   ◡◡◡   │
│  F=ma   │
└─┬─────┬─┘`

const mascotSulk = ` ╱╲     ╱╲
┌─────────┐
│  ◔   ◔  │ ?
│   ───   │
│  F=ma   │
└─┬─────┬─┘`

// RenderMascot returns the monster mascot for the given mood.
func RenderMascot(mood MascotMood) string {
	art, fg := mascotIdle, theme.Primary
	switch mood {
	case MascotCheer:
		art, fg = mascotCheer, theme.ArcadeYellow
	case MascotSulk:
		art, fg = mascotSulk, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
