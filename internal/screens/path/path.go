// Package path implements the learning path screen.
package path

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/insights"
	"github.com/abhisek/lessonhub/internal/progress"
	"github.com/abhisek/lessonhub/internal/router"
	"github.com/abhisek/lessonhub/internal/screen"
	"github.com/abhisek/lessonhub/internal/screens/lesson"
	"github.com/abhisek/lessonhub/internal/ui/components"
	"github.com/abhisek/lessonhub/internal/ui/layout"
	"github.com/abhisek/lessonhub/internal/ui/theme"
)

type rowKind int

const (
	rowSection rowKind = iota
	rowLesson
	rowEmpty
)

type row struct {
	kind   rowKind
	title  string
	status progress.Status
	lesson catalog.Lesson
}

// PathScreen shows lessons grouped into Completed, In Progress and Up Next.
type PathScreen struct {
	env          screen.Env
	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*PathScreen)(nil)
var _ screen.KeyHintProvider = (*PathScreen)(nil)
var _ screen.Refresher = (*PathScreen)(nil)

// New creates a PathScreen.
func New(env screen.Env) *PathScreen {
	s := &PathScreen{env: env}
	s.Refresh()
	return s
}

func (s *PathScreen) Init() tea.Cmd { return nil }

func (s *PathScreen) Title() string { return "Learning Path" }

func (s *PathScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Section"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// Refresh rebuilds the rows from current progress, keeping the cursor on
// the same lesson when it is still listed.
func (s *PathScreen) Refresh() tea.Cmd {
	var current string
	if s.cursor < len(s.rows) && s.rows[s.cursor].kind == rowLesson {
		current = s.rows[s.cursor].lesson.ID
	}

	p := insights.BuildPath(s.env.Catalog, s.env.Records())
	s.rows = nil
	s.addSection("COMPLETED", progress.Completed, p.Completed)
	s.addSection("IN PROGRESS", progress.InProgress, p.InProgress)
	s.addSection("UP NEXT", progress.NotStarted, p.UpNext)

	s.cursor = -1
	for i, r := range s.rows {
		if r.kind != rowLesson {
			continue
		}
		if s.cursor < 0 || r.lesson.ID == current {
			s.cursor = i
		}
		if r.lesson.ID == current {
			break
		}
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	return nil
}

func (s *PathScreen) addSection(title string, status progress.Status, lessons []catalog.Lesson) {
	s.rows = append(s.rows, row{kind: rowSection, title: fmt.Sprintf("%s (%d)", title, len(lessons)), status: status})
	if len(lessons) == 0 {
		s.rows = append(s.rows, row{kind: rowEmpty, status: status})
		return
	}
	for _, l := range lessons {
		s.rows = append(s.rows, row{kind: rowLesson, status: status, lesson: l})
	}
}

// Selected returns the lesson under the cursor.
func (s *PathScreen) Selected() (catalog.Lesson, bool) {
	if s.cursor < len(s.rows) && s.rows[s.cursor].kind == rowLesson {
		return s.rows[s.cursor].lesson, true
	}
	return catalog.Lesson{}, false
}

func (s *PathScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ProgressChangedMsg:
		return s, s.Refresh()
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextSection()
		case "enter":
			if l, ok := s.Selected(); ok {
				detail := lesson.New(s.env, l)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
			}
		}
	}
	return s, nil
}

// moveCursor moves the cursor by delta, skipping non-lesson rows.
func (s *PathScreen) moveCursor(delta int) {
	for next := s.cursor + delta; next >= 0 && next < len(s.rows); next += delta {
		if s.rows[next].kind == rowLesson {
			s.cursor = next
			return
		}
	}
}

// nextSection jumps to the first lesson of the next non-empty section,
// wrapping to the top.
func (s *PathScreen) nextSection() {
	if len(s.rows) == 0 {
		return
	}
	current := s.rows[s.cursor].status
	for i := 1; i < len(s.rows); i++ {
		j := (s.cursor + i) % len(s.rows)
		if s.rows[j].kind == rowLesson && s.rows[j].status != current {
			s.cursor = j
			return
		}
	}
}

func (s *PathScreen) View(width, height int) string {
	if height <= 0 {
		return ""
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowSection:
			lines = append(lines, "  "+theme.Section.Render(r.title))
		case rowEmpty:
			lines = append(lines, theme.Hint.Render("      nothing here yet"))
		case rowLesson:
			lines = append(lines, s.renderLesson(r, i == s.cursor, width))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *PathScreen) renderLesson(r row, selected bool, width int) string {
	cursor := "  "
	style := theme.Unselected
	if selected {
		cursor = "▸ "
		style = theme.Selected
	}
	meta := theme.Dim.Render(fmt.Sprintf("%s · %s", r.lesson.ToolName, r.lesson.Difficulty.DisplayName()))
	line := "  " + cursor + components.StatusIcon(r.status) + " " + style.Render(r.lesson.Title) + "  " + meta
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
