package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonhub/internal/ui/theme"
)

// Button is a labelled action bound to a single key.
type Button struct {
	Key     string
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(key, label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Key:     key,
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update fires OnPress when the button's key is pressed.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active || b.OnPress == nil {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == b.Key {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := "[" + b.Key + "] " + b.Label
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders buttons side by side.
func ButtonRow(buttons []Button) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		parts[i] = b.View()
	}
	return strings.Join(parts, "  ")
}
