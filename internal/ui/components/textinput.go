package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonhub/internal/ui/theme"
)

// SearchInput wraps bubbles/textinput with a prompt and focus styling.
type SearchInput struct {
	Model textinput.Model
}

// NewSearchInput creates an unfocused search input.
func NewSearchInput(placeholder string, charLimit int) SearchInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return SearchInput{Model: ti}
}

// Focus gives the input keyboard focus.
func (s *SearchInput) Focus() tea.Cmd {
	return s.Model.Focus()
}

// Blur removes keyboard focus.
func (s *SearchInput) Blur() {
	s.Model.Blur()
}

// Focused reports whether the input has focus.
func (s SearchInput) Focused() bool {
	return s.Model.Focused()
}

// Update handles messages.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the input, dimmed when unfocused.
func (s SearchInput) View() string {
	view := s.Model.View()
	if !s.Focused() {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(view)
	}
	return view
}

// Value returns the current input value.
func (s SearchInput) Value() string {
	return s.Model.Value()
}

// SetValue replaces the input value.
func (s *SearchInput) SetValue(v string) {
	s.Model.SetValue(v)
}
