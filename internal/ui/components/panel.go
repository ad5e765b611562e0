package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonhub/internal/ui/theme"
)

// PanelWidth returns the uniform inner width for centred panels.
func PanelWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Frame wraps content in a rounded border, centred within the given
// dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
