// Package welcome implements the first-run screen that asks for the
// learner's name before showing the home menu.
package welcome

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonhub/internal/router"
	"github.com/abhisek/lessonhub/internal/screen"
	"github.com/abhisek/lessonhub/internal/ui/layout"
	"github.com/abhisek/lessonhub/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 300 * time.Millisecond
	promptAt     = 900 * time.Millisecond
)

type tickMsg time.Time

// WelcomeScreen fades in the banner, then prompts for a name. Submitting
// saves the name to settings and replaces itself with the home screen.
type WelcomeScreen struct {
	env          screen.Env
	homeFactory  func() screen.Screen
	input        textinput.Model
	elapsed      time.Duration
	errMsg       string
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)
var _ screen.InputCapturer = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that transitions to the screen produced by
// homeFactory.
func New(env screen.Env, homeFactory func() screen.Screen) *WelcomeScreen {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.Prompt = "› "
	ti.CharLimit = 40
	return &WelcomeScreen{
		env:         env,
		homeFactory: homeFactory,
		input:       ti,
	}
}

// NeedsWelcome reports whether no name has been saved yet.
func NeedsWelcome(env screen.Env) bool {
	return env.Progress.Settings(context.Background()).Name == ""
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// CapturingInput is true once the name prompt is showing.
func (w *WelcomeScreen) CapturingInput() bool {
	return w.prompting()
}

func (w *WelcomeScreen) prompting() bool {
	return w.elapsed >= promptAt
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Skip"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.prompting() {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.prompting() {
			return w, w.input.Focus()
		}
		return w, tick()

	case tea.KeyPressMsg:
		if !w.prompting() {
			// Any key skips the animation.
			w.elapsed = promptAt
			return w, w.input.Focus()
		}
		switch msg.String() {
		case "enter":
			return w, w.submit()
		case "esc":
			return w, w.transition()
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}

	return w, nil
}

func (w *WelcomeScreen) submit() tea.Cmd {
	name := strings.TrimSpace(w.input.Value())
	if name == "" {
		w.errMsg = "Type a name, or press Esc to skip."
		return nil
	}
	ctx := context.Background()
	settings := w.env.Progress.Settings(ctx)
	settings.Name = name
	if err := w.env.Progress.SaveSettings(ctx, settings); err != nil {
		w.errMsg = err.Error()
		return nil
	}
	return w.transition()
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if w.elapsed >= bannerAt {
		sections = append(sections, RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Learn the AI tools your team uses"))
	}

	if w.prompting() {
		sections = append(sections, "", theme.Dim.Render("What should we call you?"), w.input.View())
		if w.errMsg != "" {
			sections = append(sections, theme.Failure.Render(w.errMsg))
		}
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
