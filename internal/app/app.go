// Package app wires the screens into a Bubble Tea program.
package app

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/progress"
	"github.com/abhisek/lessonhub/internal/router"
	"github.com/abhisek/lessonhub/internal/screen"
	"github.com/abhisek/lessonhub/internal/screens/home"
	"github.com/abhisek/lessonhub/internal/screens/welcome"
	"github.com/abhisek/lessonhub/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Catalog  *catalog.Catalog
	Progress *progress.Store
	Logger   *zap.Logger
	// Now overrides the clock used for recommendations.
	Now func() time.Time
}

type streakMsg int

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	env    screen.Env
	logger *zap.Logger
	streak int
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the home screen, or on the
// welcome screen when no name has been saved.
func newAppModel(opts Options) AppModel {
	env := screen.Env{Catalog: opts.Catalog, Progress: opts.Progress, Now: opts.Now}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	homeFactory := func() screen.Screen { return home.New(env) }
	var initial screen.Screen
	if welcome.NeedsWelcome(env) {
		initial = welcome.New(env, homeFactory)
	} else {
		initial = homeFactory()
	}
	return AppModel{
		router: router.New(initial),
		env:    env,
		logger: logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.loadStreak, m.router.Active().Init())
}

func (m AppModel) loadStreak() tea.Msg {
	return streakMsg(m.env.Progress.Streak(context.Background()))
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case streakMsg:
		m.streak = int(msg)
		return m, nil

	case screen.ProgressChangedMsg:
		m.logger.Debug("lesson status changed",
			zap.String("lesson", msg.LessonID), zap.String("status", string(msg.Status)))
		return m, tea.Batch(m.loadStreak, m.router.Update(msg))

	case screen.ErrorMsg:
		m.logger.Warn("screen error", zap.Error(msg.Err))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "q":
			if m.capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			if msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		case "H":
			if !m.capturing() && m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.HomeMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.streak, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Catalog == nil || opts.Progress == nil {
		return errors.New("app: catalog and progress store are required")
	}
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
