package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonhub/internal/insights"
	"github.com/abhisek/lessonhub/internal/ui/layout"
	"github.com/abhisek/lessonhub/internal/ui/theme"
)

const (
	titleFull    = "L E S S O N H U B"
	titleCompact = "lessonhub"
	tagline      = "Learn the AI tools your team uses"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	if compact {
		return center.Render(style.Render(titleCompact))
	}
	return center.Render(style.Render(titleFull)) + "\n" +
		center.Render(theme.Dim.Render(tagline))
}

func renderGreeting(name string, cw int) string {
	greeting := "Welcome!"
	if name != "" {
		greeting = fmt.Sprintf("Welcome back, %s!", name)
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Foreground(theme.Text).Render(greeting)
}

// renderStatsBar renders the dashboard numbers in a bordered box.
func renderStatsBar(sum insights.Summary, streak int, cw int) string {
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	startedStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	stats := fmt.Sprintf("%s  %s  %s",
		doneStyle.Render(fmt.Sprintf("● %d/%d DONE", sum.Completed, sum.Total)),
		startedStyle.Render(fmt.Sprintf("◐ %d STARTED", sum.InProgress)),
		streakStyle.Render(strings.ToUpper(layout.StreakLabel(streak))),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMenu renders each menu item as a fixed-width button, or as plain
// lines when space is short.
func renderMenu(items []string, selected int, cw int, compact bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Highlight).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var rendered []string
	for i, label := range items {
		switch {
		case compact && i == selected:
			rendered = append(rendered, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ "+label+" "))
		case compact:
			rendered = append(rendered, theme.Unselected.Render("   "+label))
		case i == selected:
			rendered = append(rendered, selectedBtn.Render("▸ "+label))
		default:
			rendered = append(rendered, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rendered, "\n"))
}
