// Package library implements the searchable lesson list.
package library

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/progress"
	"github.com/abhisek/lessonhub/internal/router"
	"github.com/abhisek/lessonhub/internal/screen"
	"github.com/abhisek/lessonhub/internal/screens/lesson"
	"github.com/abhisek/lessonhub/internal/ui/components"
	"github.com/abhisek/lessonhub/internal/ui/layout"
	"github.com/abhisek/lessonhub/internal/ui/theme"
)

// LibraryScreen lists catalog lessons narrowed by a search query and
// cycling tool, category and difficulty filters.
type LibraryScreen struct {
	env    screen.Env
	search components.SearchInput

	tools   []string
	toolIdx int
	catIdx  int
	diffIdx int

	results  []catalog.Lesson
	statuses map[string]progress.Record
	cursor   int
	offset   int
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)
var _ screen.Refresher = (*LibraryScreen)(nil)
var _ screen.InputCapturer = (*LibraryScreen)(nil)

// New creates a LibraryScreen showing every lesson.
func New(env screen.Env) *LibraryScreen {
	s := &LibraryScreen{
		env:    env,
		search: components.NewSearchInput("search title, summary, tags", 64),
		tools:  env.Catalog.Tools(),
	}
	s.apply()
	s.statuses = env.Records()
	return s
}

func (s *LibraryScreen) Init() tea.Cmd { return nil }

func (s *LibraryScreen) Title() string { return "Library" }

// Refresh reloads lesson statuses.
func (s *LibraryScreen) Refresh() tea.Cmd {
	s.statuses = s.env.Records()
	return nil
}

// CapturingInput reports whether the search box has focus.
func (s *LibraryScreen) CapturingInput() bool {
	return s.search.Focused()
}

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "Search"},
		{Key: "t", Description: "Tool"},
		{Key: "c", Description: "Category"},
		{Key: "d", Description: "Difficulty"},
		{Key: "x", Description: "Clear"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// Filter returns the filter built from the current inputs.
func (s *LibraryScreen) Filter() catalog.Filter {
	f := catalog.Filter{Query: strings.TrimSpace(s.search.Value())}
	if s.toolIdx > 0 {
		f.Tool = s.tools[s.toolIdx-1]
	}
	if s.catIdx > 0 {
		f.Category = catalog.AllCategories()[s.catIdx-1]
	}
	if s.diffIdx > 0 {
		f.Difficulty = catalog.AllDifficulties()[s.diffIdx-1]
	}
	return f
}

// Results returns the lessons currently listed.
func (s *LibraryScreen) Results() []catalog.Lesson {
	return s.results
}

func (s *LibraryScreen) apply() {
	s.results = s.env.Catalog.Apply(s.Filter())
	s.cursor = 0
	s.offset = 0
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ProgressChangedMsg:
		return s, s.Refresh()

	case tea.KeyMsg:
		if s.search.Focused() {
			return s, s.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			return s, s.search.Focus()
		case "t":
			s.toolIdx = (s.toolIdx + 1) % (len(s.tools) + 1)
			s.apply()
		case "c":
			s.catIdx = (s.catIdx + 1) % (len(catalog.AllCategories()) + 1)
			s.apply()
		case "d":
			s.diffIdx = (s.diffIdx + 1) % (len(catalog.AllDifficulties()) + 1)
			s.apply()
		case "x":
			s.toolIdx, s.catIdx, s.diffIdx = 0, 0, 0
			s.search.SetValue("")
			s.apply()
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.results)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(s.results) {
				detail := lesson.New(s.env, s.results[s.cursor])
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
			}
		}
		return s, nil
	}
	return s, nil
}

func (s *LibraryScreen) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		s.search.Blur()
		return nil
	case "esc":
		s.search.SetValue("")
		s.search.Blur()
		s.apply()
		return nil
	}
	before := s.search.Value()
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	if s.search.Value() != before {
		s.apply()
	}
	return cmd
}

func (s *LibraryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("  " + s.search.View() + "\n")
	b.WriteString("  " + s.renderFilters() + "\n\n")

	listHeight := height - 4
	if listHeight < 1 {
		listHeight = 1
	}

	if len(s.results) == 0 {
		b.WriteString(theme.Hint.Render("  No lessons match these filters."))
		return b.String()
	}

	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+listHeight {
		s.offset = s.cursor - listHeight + 1
	}

	end := min(s.offset+listHeight, len(s.results))
	rows := make([]string, 0, end-s.offset)
	for i := s.offset; i < end; i++ {
		rows = append(rows, s.renderRow(s.results[i], i == s.cursor, width))
	}
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}

func (s *LibraryScreen) renderFilters() string {
	tool, cat, diff := "all", "all", "all"
	f := s.Filter()
	if f.Tool != "" {
		tool = f.Tool
	}
	if f.Category != "" {
		cat = f.Category.DisplayName()
	}
	if f.Difficulty != "" {
		diff = f.Difficulty.DisplayName()
	}

	label := func(name, value string) string {
		style := theme.Dim
		if value != "all" {
			style = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		}
		return theme.Dim.Render(name+": ") + style.Render(value)
	}
	count := theme.Dim.Render(fmt.Sprintf("%d of %d", len(s.results), s.env.Catalog.Len()))
	return strings.Join([]string{label("tool", tool), label("category", cat), label("difficulty", diff), count}, "   ")
}

func (s *LibraryScreen) renderRow(l catalog.Lesson, selected bool, width int) string {
	meta := fmt.Sprintf("%-14s %-12s %3dm", l.ToolName, l.Difficulty.DisplayName(), l.EstimatedMinutes)
	titleWidth := width - lipgloss.Width(meta) - 10
	if titleWidth < 10 {
		titleWidth = 10
	}

	title := l.Title
	if len([]rune(title)) > titleWidth {
		title = string([]rune(title)[:titleWidth-1]) + "…"
	}
	title = fmt.Sprintf("%-*s", titleWidth, title)

	cursor := "  "
	titleStyle := theme.Unselected
	if selected {
		cursor = "▸ "
		titleStyle = theme.Selected
	}

	return "  " + cursor + components.StatusIcon(s.statuses[l.ID].Status) + " " +
		titleStyle.Render(title) + "  " + theme.Dim.Render(meta)
}
