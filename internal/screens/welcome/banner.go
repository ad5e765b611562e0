package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonhub/internal/ui/theme"
)

const bannerArt = `
 ██╗     ███████╗███████╗███████╗ ██████╗ ███╗   ██╗
 ██║     ██╔════╝██╔════╝██╔════╝██╔═══██╗████╗  ██║
 ██║     █████╗  ███████╗███████╗██║   ██║██╔██╗ ██║
 ██║     ██╔══╝  ╚════██║╚════██║██║   ██║██║╚██╗██║
 ███████╗███████╗███████║███████║╚██████╔╝██║ ╚████║
 ╚══════╝╚══════╝╚══════╝╚══════╝ ╚═════╝ ╚═╝  ╚═══╝
                      h u b`

const bannerCompact = "L E S S O N H U B"

// RenderBanner returns the banner, or a one-line version for terminals
// narrower than 56 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 56 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
