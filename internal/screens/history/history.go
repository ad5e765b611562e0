// Package history implements the activity log screen.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonhub/internal/progress"
	"github.com/abhisek/lessonhub/internal/router"
	"github.com/abhisek/lessonhub/internal/screen"
	"github.com/abhisek/lessonhub/internal/screens/lesson"
	"github.com/abhisek/lessonhub/internal/store"
	"github.com/abhisek/lessonhub/internal/ui/components"
	"github.com/abhisek/lessonhub/internal/ui/layout"
	"github.com/abhisek/lessonhub/internal/ui/theme"
)

const historyLimit = 100

type historyLoadedMsg struct {
	Events []store.ActivityEvent
	Err    error
}

// HistoryScreen lists recent lesson status changes, newest first.
type HistoryScreen struct {
	env      screen.Env
	events   []store.ActivityEvent
	selected int
	offset   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.Refresher = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env screen.Env) *HistoryScreen {
	return &HistoryScreen{env: env}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load
}

// Refresh reloads the log.
func (s *HistoryScreen) Refresh() tea.Cmd {
	return s.load
}

func (s *HistoryScreen) load() tea.Msg {
	events, err := s.env.Progress.History(context.Background(), historyLimit)
	return historyLoadedMsg{Events: events, Err: err}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open lesson"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.events = msg.Events
		}
		if s.selected >= len(s.events) {
			s.selected = 0
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.events) {
				if l, ok := s.env.Catalog.Lesson(s.events[s.selected].LessonID); ok {
					detail := lesson.New(s.env, l)
					return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
				}
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return centered.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No activity yet. Open the library and start a lesson!")
	}

	rows := max(height-1, 1)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rows {
		s.offset = s.selected - rows + 1
	}

	var b strings.Builder
	b.WriteString("\n")
	loc := s.env.Progress.Location()
	end := min(s.offset+rows, len(s.events))
	for i := s.offset; i < end; i++ {
		ev := s.events[i]
		title := ev.LessonID
		if l, ok := s.env.Catalog.Lesson(ev.LessonID); ok {
			title = l.Title
		}
		status := progress.Status(ev.Status)

		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}

		line := fmt.Sprintf("%s%s  %s %-12s %s",
			prefix,
			theme.Dim.Render(ev.Timestamp.In(loc).Format("Jan 02 15:04")),
			components.StatusIcon(status),
			status.DisplayName(),
			style.Render(title))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}
