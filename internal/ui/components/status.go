package components

import (
	"github.com/abhisek/lessonhub/internal/progress"
	"github.com/abhisek/lessonhub/internal/ui/theme"
)

// StatusIcon returns a one-cell marker for a lesson status.
func StatusIcon(s progress.Status) string {
	switch s {
	case progress.Completed:
		return theme.Done.Render("●")
	case progress.InProgress:
		return theme.Started.Render("◐")
	default:
		return theme.Dim.Render("○")
	}
}

// StatusLabel returns the styled display name for a lesson status.
func StatusLabel(s progress.Status) string {
	switch s {
	case progress.Completed:
		return theme.Done.Render(s.DisplayName())
	case progress.InProgress:
		return theme.Started.Render(s.DisplayName())
	default:
		return theme.Dim.Render(progress.NotStarted.DisplayName())
	}
}
