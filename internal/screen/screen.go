package screen

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/progress"
	"github.com/abhisek/lessonhub/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens that reload their data when they
// become active again after the screen above them is popped.
type Refresher interface {
	Refresh() tea.Cmd
}

// ProgressChangedMsg is sent after a screen changes a lesson's status.
type ProgressChangedMsg struct {
	LessonID string
	Status   progress.Status
}

// Env carries the data sources shared by every screen.
type Env struct {
	Catalog  *catalog.Catalog
	Progress *progress.Store
	Now      func() time.Time
}

// Records returns the current progress records.
func (e Env) Records() map[string]progress.Record {
	return e.Progress.All(context.Background())
}

// Status returns the status of one lesson, NotStarted when untouched.
func (e Env) Status(lessonID string) progress.Status {
	if r, ok := e.Progress.Get(context.Background(), lessonID); ok {
		return r.Status
	}
	return progress.NotStarted
}

// SetStatus updates a lesson's status and reports the change.
func (e Env) SetStatus(lessonID string, status progress.Status) tea.Cmd {
	return func() tea.Msg {
		if err := e.Progress.SetStatus(context.Background(), lessonID, status); err != nil {
			return ErrorMsg{Err: err}
		}
		return ProgressChangedMsg{LessonID: lessonID, Status: status}
	}
}

// ErrorMsg carries a failure to be shown by the active screen.
type ErrorMsg struct {
	Err error
}

// Clock returns Now or time.Now when unset.
func (e Env) Clock() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// InputCapturer is implemented by screens that are currently reading text.
// While CapturingInput is true the app forwards Esc and printable keys to the
// screen instead of treating them as navigation.
type InputCapturer interface {
	CapturingInput() bool
}
