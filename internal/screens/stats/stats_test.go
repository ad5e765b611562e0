package stats

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

func testEnv() screen.Env {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	return screen.Env{
		Catalog:  catalog.Default(),
		Progress: progress.NewStore(store.NewMemory(), progress.WithClock(clock), progress.WithLocation(time.UTC)),
		Now:      clock,
	}
}

func TestStats_Refresh(t *testing.T) {
	env := testEnv()
	id := env.Catalog.All()[0].ID
	s := New(env)

	if s.summary.Completed != 0 || s.streak != 0 {
		t.Fatalf("fresh store: completed=%d streak=%d", s.summary.Completed, s.streak)
	}
	if len(s.recs) != shownRecommendations {
		t.Errorf("recommendations = %d, want %d", len(s.recs), shownRecommendations)
	}

	if err := env.Progress.SetStatus(context.Background(), id, progress.Completed); err != nil {
		t.Fatal(err)
	}
	s.Update(screen.ProgressChangedMsg{LessonID: id, Status: progress.Completed})

	if s.summary.Completed != 1 {
		t.Errorf("completed = %d", s.summary.Completed)
	}
	if s.streak != 1 {
		t.Errorf("streak = %d", s.streak)
	}
	for _, r := range s.recs {
		if r.Lesson.ID == id {
			t.Error("completed lesson should not be recommended")
		}
	}
}

func TestStats_OpenRecommendation(t *testing.T) {
	s := New(testEnv())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != s.recs[1].Lesson.Title {
		t.Errorf("opened %q, want %q", push.Screen.Title(), s.recs[1].Lesson.Title)
	}
}

func TestStats_View(t *testing.T) {
	s := New(testEnv())
	view := s.View(100, 40)
	for _, want := range []string{"Overall", catalog.CategoryCoding.DisplayName()} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
