// Package home implements the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonhub/internal/insights"
	"github.com/abhisek/lessonhub/internal/router"
	"github.com/abhisek/lessonhub/internal/screen"
	"github.com/abhisek/lessonhub/internal/screens/history"
	"github.com/abhisek/lessonhub/internal/screens/library"
	"github.com/abhisek/lessonhub/internal/screens/path"
	"github.com/abhisek/lessonhub/internal/screens/stats"
	"github.com/abhisek/lessonhub/internal/ui/components"
	"github.com/abhisek/lessonhub/internal/ui/layout"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	env     screen.Env
	menu    components.Menu
	name    string
	summary insights.Summary
	streak  int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// MenuLabels lists the home menu entries in display order.
var MenuLabels = []string{"LIBRARY", "LEARNING PATH", "STATS", "HISTORY", "QUIT"}

// New creates a new HomeScreen.
func New(env screen.Env) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: MenuLabels[0], Action: push(func() screen.Screen { return library.New(env) })},
		{Label: MenuLabels[1], Action: push(func() screen.Screen { return path.New(env) })},
		{Label: MenuLabels[2], Action: push(func() screen.Screen { return stats.New(env) })},
		{Label: MenuLabels[3], Action: push(func() screen.Screen { return history.New(env) })},
		{Label: MenuLabels[4], Action: func() tea.Cmd { return tea.Quit }},
	}

	h := &HomeScreen{
		env:  env,
		menu: components.NewMenu(items),
	}
	h.Refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh reloads the greeting and dashboard numbers.
func (h *HomeScreen) Refresh() tea.Cmd {
	ctx := context.Background()
	h.name = h.env.Progress.Settings(ctx).Name
	h.streak = h.env.Progress.Streak(ctx)
	h.summary = insights.Summarize(h.env.Catalog, h.env.Records())
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.ProgressChangedMsg); ok {
		return h, h.Refresh()
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactWidth(width) || layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight)
	cw := components.PanelWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderGreeting(h.name, cw),
		renderStatsBar(h.summary, h.streak, cw),
		renderMenu(MenuLabels, h.menu.Selected, cw, compact),
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
