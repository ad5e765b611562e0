// Package lesson implements the lesson detail screen.
package lesson

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/progress"
	"github.com/abhisek/lessonhub/internal/screen"
	"github.com/abhisek/lessonhub/internal/ui/components"
	"github.com/abhisek/lessonhub/internal/ui/layout"
	"github.com/abhisek/lessonhub/internal/ui/theme"
)

const maxBodyWidth = 88

// LessonScreen shows one lesson's metadata and rendered body and lets the
// learner change its status.
type LessonScreen struct {
	env    screen.Env
	lesson catalog.Lesson
	status progress.Status
	errMsg string

	body      []string
	bodyWidth int
	offset    int
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.Refresher = (*LessonScreen)(nil)

// New creates a LessonScreen for l.
func New(env screen.Env, l catalog.Lesson) *LessonScreen {
	return &LessonScreen{
		env:    env,
		lesson: l,
		status: env.Status(l.ID),
	}
}

func (s *LessonScreen) Init() tea.Cmd { return nil }

func (s *LessonScreen) Title() string { return s.lesson.Title }

// Refresh reloads the lesson's status.
func (s *LessonScreen) Refresh() tea.Cmd {
	s.status = s.env.Status(s.lesson.ID)
	return nil
}

// Status returns the status currently shown.
func (s *LessonScreen) Status() progress.Status { return s.status }

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "s", Description: "Start"},
		{Key: "c", Description: "Complete"},
		{Key: "r", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ProgressChangedMsg:
		if msg.LessonID == s.lesson.ID {
			s.status = msg.Status
			s.errMsg = ""
		}
		return s, nil

	case screen.ErrorMsg:
		s.errMsg = msg.Err.Error()
		return s, nil

	case tea.KeyMsg:
		for _, b := range s.buttons() {
			var cmd tea.Cmd
			if _, cmd = b.Update(msg); cmd != nil {
				return s, cmd
			}
		}
		switch msg.String() {
		case "up", "k":
			s.offset--
		case "down", "j":
			s.offset++
		case "pgup":
			s.offset -= 10
		case "pgdown", " ":
			s.offset += 10
		case "home", "g":
			s.offset = 0
		}
		if s.offset < 0 {
			s.offset = 0
		}
	}
	return s, nil
}

func (s *LessonScreen) buttons() []components.Button {
	set := func(status progress.Status) func() tea.Cmd {
		return func() tea.Cmd { return s.env.SetStatus(s.lesson.ID, status) }
	}
	return []components.Button{
		components.NewButton("s", "Start", s.status == progress.NotStarted, set(progress.InProgress)),
		components.NewButton("c", "Complete", s.status != progress.Completed, set(progress.Completed)),
		components.NewButton("r", "Reset", s.status != progress.NotStarted, set(progress.NotStarted)),
	}
}

func (s *LessonScreen) View(width, height int) string {
	cw := min(width-4, maxBodyWidth)
	if cw != s.bodyWidth {
		s.body = components.RenderMarkdown(s.lesson.Content, cw)
		s.bodyWidth = cw
	}

	head := s.renderHead(cw)
	foot := components.ButtonRow(s.buttons())
	if s.errMsg != "" {
		foot += "\n" + theme.Failure.Render(s.errMsg)
	}

	bodyHeight := height - lipgloss.Height(head) - lipgloss.Height(foot) - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	maxOffset := max(len(s.body)-bodyHeight, 0)
	s.offset = min(s.offset, maxOffset)

	end := min(s.offset+bodyHeight, len(s.body))
	window := strings.Join(s.body[s.offset:end], "\n")

	return lipgloss.NewStyle().PaddingLeft(2).Render(
		head + "\n" +
			lipgloss.NewStyle().Height(bodyHeight).Render(window) + "\n\n" +
			foot)
}

func (s *LessonScreen) renderHead(width int) string {
	l := s.lesson
	var b strings.Builder

	b.WriteString(theme.Heading.Render(l.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(l.Summary))
	b.WriteString("\n")

	meta := fmt.Sprintf("%s · %s · %s · %d min",
		l.ToolName, l.Category.DisplayName(), l.Difficulty.DisplayName(), l.EstimatedMinutes)
	b.WriteString(theme.Dim.Render(meta))
	b.WriteString("   ")
	b.WriteString(components.StatusIcon(s.status) + " " + components.StatusLabel(s.status))
	b.WriteString("\n")

	if len(l.Tags) > 0 {
		b.WriteString(theme.Hint.Render("#" + strings.Join(l.Tags, " #")))
		b.WriteString("\n")
	}
	if l.Course != nil {
		b.WriteString(theme.Dim.Render("Course: ") + theme.Body.Render(l.Course.Name) +
			theme.Dim.Render(" "+l.Course.URL))
		b.WriteString("\n")
	}

	b.WriteString(theme.Dim.Render(strings.Repeat("─", width)))
	return b.String()
}
