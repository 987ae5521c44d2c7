package components

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

const bannerArt = `██████╗ ██╗  ██╗██╗   ██╗███████╗██╗███████╗
██╔══██╗██║  ██║╚██╗ ██╔╝██╔════╝██║╚══███╔╝
██████╔╝███████║ ╚████╔╝ ███████╗██║  ███╔╝
██╔═══╝ ██╔══██║  ╚██╔╝  ╚════██║██║ ███╔╝
██║     ██║  ██║   ██║   ███████║██║███████╗
╚═╝     ╚═╝  ╚═╝   ╚═╝   ╚══════╝╚═╝╚══════╝`

const bannerCompact = "P · H · Y · S · I · Z"

// BannerWidth is the width of the full block-letter banner.
const BannerWidth = 44

// RenderBanner returns the PHYSIZ banner, falling back to a one-line
// title when width is too narrow for the block letters.
func RenderBanner(width int, fg color.Color) string {
	style := lipgloss.NewStyle().Foreground(fg).Bold(true)
	if width < BannerWidth+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
