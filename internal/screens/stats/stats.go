// Package stats implements the progress overview screen.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonhub/internal/insights"
	"github.com/abhisek/lessonhub/internal/router"
	"github.com/abhisek/lessonhub/internal/screen"
	"github.com/abhisek/lessonhub/internal/screens/lesson"
	"github.com/abhisek/lessonhub/internal/ui/components"
	"github.com/abhisek/lessonhub/internal/ui/layout"
	"github.com/abhisek/lessonhub/internal/ui/theme"
)

const shownRecommendations = 3

// StatsScreen shows the streak, completion summary, per-category progress
// and the top recommendations.
type StatsScreen struct {
	env     screen.Env
	streak  int
	summary insights.Summary
	recs    []insights.Recommendation
	cursor  int
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)
var _ screen.Refresher = (*StatsScreen)(nil)

// New creates a StatsScreen.
func New(env screen.Env) *StatsScreen {
	s := &StatsScreen{env: env}
	s.Refresh()
	return s
}

func (s *StatsScreen) Init() tea.Cmd { return nil }

func (s *StatsScreen) Title() string { return "Stats" }

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Recommendation"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// Refresh recomputes everything from the store.
func (s *StatsScreen) Refresh() tea.Cmd {
	records := s.env.Records()
	s.streak = s.env.Progress.Streak(context.Background())
	s.summary = insights.Summarize(s.env.Catalog, records)
	s.recs = insights.Recommend(s.env.Catalog, records, s.env.Clock(), shownRecommendations)
	if s.cursor >= len(s.recs) {
		s.cursor = 0
	}
	return nil
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ProgressChangedMsg:
		return s, s.Refresh()
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.recs)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(s.recs) {
				detail := lesson.New(s.env, s.recs[s.cursor].Lesson)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
			}
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	cw := min(width-8, 64)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	section := func(title string) string {
		return center(theme.Dim.Render(title)) + "\n" + center(divider) + "\n\n"
	}

	var b strings.Builder
	sum := s.summary

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(layout.StreakLabel(s.streak) + " streak")))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Completed: %d        In progress: %d        Not started: %d",
		sum.Completed, sum.InProgress, sum.NotStarted)
	b.WriteString(center(theme.Body.Render(statsLine)))
	b.WriteString("\n\n")

	overall := components.NewProgressBar("Overall", sum.Completed, sum.Total, cw)
	overall.LabelWidth = 14
	b.WriteString(center(overall.View()))
	b.WriteString("\n")
	b.WriteString(center(theme.Dim.Render(fmt.Sprintf("%.1f%% complete", sum.Percent))))
	b.WriteString("\n\n")

	b.WriteString(section("By category"))
	for _, cc := range sum.ByCategory {
		bar := components.NewProgressBar(cc.Category.DisplayName(), cc.Completed, cc.Total, cw)
		bar.LabelWidth = 14
		b.WriteString(center(bar.View()))
		b.WriteString("\n")
	}

	if len(s.recs) > 0 {
		b.WriteString("\n")
		b.WriteString(section("Recommended next"))
		for i, r := range s.recs {
			style := theme.Unselected
			cursor := "  "
			if i == s.cursor {
				style = theme.Selected
				cursor = "▸ "
			}
			line := fmt.Sprintf("%s%-*s %4.2f", cursor, cw-8, truncate(r.Lesson.Title, cw-8), r.Score)
			b.WriteString(center(style.Render(line)))
			b.WriteString("\n")
			b.WriteString(center(theme.Hint.Render(fmt.Sprintf("%-*s", cw, "  "+strings.Join(r.Reasons, " · ")))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
