package welcome

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/progress"
	"github.com/abhisek/lessonhub/internal/router"
	"github.com/abhisek/lessonhub/internal/screen"
	"github.com/abhisek/lessonhub/internal/store"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome() (*WelcomeScreen, screen.Env, *int) {
	env := screen.Env{
		Catalog:  catalog.Default(),
		Progress: progress.NewStore(store.NewMemory()),
	}
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(env, factory), env, &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func typeName(w *WelcomeScreen, name string) {
	for _, r := range name {
		w.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestPhases(t *testing.T) {
	w, _, _ := newTestWelcome()

	if strings.Contains(w.View(80, 24), "Learn the AI tools") {
		t.Error("tagline should not be visible at start")
	}
	if w.CapturingInput() {
		t.Error("should not capture input before the prompt")
	}

	sendTicks(w, 3)
	if !strings.Contains(w.View(80, 24), "Learn the AI tools") {
		t.Error("tagline should be visible after the banner phase")
	}

	sendTicks(w, 6)
	if !w.CapturingInput() {
		t.Error("prompt should be showing after the animation")
	}
	if !strings.Contains(w.View(80, 24), "What should we call you?") {
		t.Error("prompt text missing")
	}
}

func TestTickStopsAtPrompt(t *testing.T) {
	w, _, _ := newTestWelcome()
	sendTicks(w, 20)
	if w.elapsed != promptAt {
		t.Errorf("elapsed = %v, want %v", w.elapsed, promptAt)
	}
	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("no tick should be scheduled once prompting")
	}
}

func TestKeySkipsAnimation(t *testing.T) {
	w, _, count := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if !w.prompting() {
		t.Fatal("a key press should jump to the prompt")
	}
	if w.input.Value() != "" {
		t.Error("the skipping key should not be typed into the prompt")
	}
	if *count != 0 {
		t.Error("factory should not be called yet")
	}
}

func TestSubmitSavesName(t *testing.T) {
	w, env, count := newTestWelcome()
	sendTicks(w, 9)

	typeName(w, "Ada")
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if *count != 1 {
		t.Errorf("factory called %d times, want 1", *count)
	}
	if got := env.Progress.Settings(context.Background()).Name; got != "Ada" {
		t.Errorf("saved name = %q", got)
	}
	if NeedsWelcome(env) {
		t.Error("NeedsWelcome should be false after saving a name")
	}
}

func TestSubmitEmptyName(t *testing.T) {
	w, env, count := newTestWelcome()
	sendTicks(w, 9)

	if _, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("empty name should not transition")
	}
	if w.errMsg == "" {
		t.Error("expected an error message")
	}
	if *count != 0 || !NeedsWelcome(env) {
		t.Error("nothing should be saved")
	}
}

func TestEscSkipsWithoutSaving(t *testing.T) {
	w, env, count := newTestWelcome()
	sendTicks(w, 9)

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	// A second skip does not build another home screen.
	w.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if *count != 1 {
		t.Errorf("factory called %d times, want 1", *count)
	}
	if !NeedsWelcome(env) {
		t.Error("skipping should not save a name")
	}
}
