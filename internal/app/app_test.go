package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/progress"
	"github.com/abhisek/lessonhub/internal/router"
	"github.com/abhisek/lessonhub/internal/screen"
	"github.com/abhisek/lessonhub/internal/screens/library"
	"github.com/abhisek/lessonhub/internal/store"
)

func testOptions(t *testing.T, name string) Options {
	t.Helper()
	ps := progress.NewStore(store.NewMemory())
	if name != "" {
		settings := progress.DefaultSettings()
		settings.Name = name
		if err := ps.SaveSettings(context.Background(), settings); err != nil {
			t.Fatal(err)
		}
	}
	return Options{Catalog: catalog.Default(), Progress: ps}
}

// step runs one update and feeds any navigation message back in.
func step(m AppModel, msg tea.Msg) (AppModel, tea.Msg) {
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		return m, nil
	}
	out := cmd()
	switch out.(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.HomeMsg, router.ReplaceScreenMsg:
		next, _ = m.Update(out)
		m = next.(AppModel)
	}
	return m, out
}

func TestStartScreen(t *testing.T) {
	m := newAppModel(testOptions(t, ""))
	if m.router.Active().Title() != "" {
		t.Errorf("first run should start on the welcome screen, got %q", m.router.Active().Title())
	}

	m = newAppModel(testOptions(t, "Ada"))
	if m.router.Active().Title() != "Home" {
		t.Errorf("returning user should start on home, got %q", m.router.Active().Title())
	}
}

func TestEscAndQ(t *testing.T) {
	m := newAppModel(testOptions(t, "Ada"))

	m, _ = step(m, router.PushScreenMsg{Screen: library.New(m.env)})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d", m.router.Depth())
	}

	m, _ = step(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Errorf("esc should pop, depth = %d", m.router.Depth())
	}

	m, out := step(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if out != nil || m.router.Depth() != 1 {
		t.Error("esc at the root should do nothing")
	}

	_, out = step(m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	if _, ok := out.(tea.QuitMsg); !ok {
		t.Errorf("q at the root should quit, got %T", out)
	}
}

func TestCapturingScreenKeepsKeys(t *testing.T) {
	m := newAppModel(testOptions(t, "Ada"))
	lib := library.New(m.env)
	m, _ = step(m, router.PushScreenMsg{Screen: lib})
	m, _ = step(m, tea.KeyPressMsg{Code: '/', Text: "/"})

	m, _ = step(m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	if m.router.Depth() != 2 {
		t.Fatal("q should be typed into the search box, not pop")
	}
	if lib.Filter().Query != "q" {
		t.Errorf("query = %q", lib.Filter().Query)
	}

	m, _ = step(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 2 || lib.CapturingInput() {
		t.Error("esc should leave the search box first")
	}
	m, _ = step(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Error("second esc should pop")
	}
}

func TestHomeKey(t *testing.T) {
	m := newAppModel(testOptions(t, "Ada"))
	m, _ = step(m, router.PushScreenMsg{Screen: library.New(m.env)})
	m, _ = step(m, router.PushScreenMsg{Screen: library.New(m.env)})

	m, _ = step(m, tea.KeyPressMsg{Code: 'H', Text: "H"})
	if m.router.Depth() != 1 {
		t.Errorf("H should return home, depth = %d", m.router.Depth())
	}
}

func TestProgressChangeReloadsStreak(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	opts := testOptions(t, "Ada")
	opts.Logger = zap.New(core)
	m := newAppModel(opts)

	id := opts.Catalog.All()[0].ID
	if err := opts.Progress.SetStatus(context.Background(), id, progress.Completed); err != nil {
		t.Fatal(err)
	}

	next, _ := m.Update(screen.ProgressChangedMsg{LessonID: id, Status: progress.Completed})
	m = next.(AppModel)
	next, _ = m.Update(m.loadStreak())
	m = next.(AppModel)

	if m.streak != 1 {
		t.Errorf("streak = %d, want 1", m.streak)
	}
	if logs.FilterMessage("lesson status changed").Len() != 1 {
		t.Error("expected a debug log for the status change")
	}
}

func TestRunRequiresStores(t *testing.T) {
	if err := Run(context.Background(), Options{}); err == nil {
		t.Error("expected an error without a catalog and store")
	}
}
