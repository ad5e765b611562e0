package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessonhub/internal/catalog"
)

// run executes the CLI against a data file and returns stdout.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--log-level", "error", "--db", db}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func fileDB(t *testing.T) string {
	t.Helper()
	t.Setenv("LESSONHUB_BACKEND", "file")
	return filepath.Join(t.TempDir(), "lessonhub.json")
}

func sqliteDB(t *testing.T) string {
	t.Helper()
	t.Setenv("LESSONHUB_BACKEND", "sqlite")
	return filepath.Join(t.TempDir(), "lessonhub.db")
}

func firstLesson() catalog.Lesson {
	return catalog.Default().All()[0]
}

func TestVersion(t *testing.T) {
	out, err := run(t, fileDB(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lessonhub")
}

func TestLessons_Filters(t *testing.T) {
	db := fileDB(t)

	out, err := run(t, db, "lessons")
	require.NoError(t, err)
	assert.Contains(t, out, firstLesson().ID)

	out, err = run(t, db, "lessons", "--difficulty", "advanced")
	require.NoError(t, err)
	for _, l := range catalog.Default().ByDifficulty(catalog.DifficultyBeginner) {
		assert.NotContains(t, out, l.ID+" ")
	}

	_, err = run(t, db, "lessons", "--category", "cooking")
	assert.ErrorContains(t, err, "unknown category")
}

func TestShow(t *testing.T) {
	db := fileDB(t)
	l := firstLesson()

	out, err := run(t, db, "show", l.ID)
	require.NoError(t, err)
	assert.Contains(t, out, l.Title)
	assert.Contains(t, out, "Not started")

	_, err = run(t, db, "show", "no-such-lesson")
	assert.EqualError(t, err, "lesson not found: no-such-lesson")
}

func TestStatusLifecycle_PersistsAcrossRuns(t *testing.T) {
	db := fileDB(t)
	id := firstLesson().ID

	_, err := run(t, db, "start", id)
	require.NoError(t, err)

	out, err := run(t, db, "status", id)
	require.NoError(t, err)
	assert.Contains(t, out, "In progress")

	out, err = run(t, db, "complete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Streak: 1 day")

	out, err = run(t, db, "progress")
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, err = run(t, db, "streak")
	require.NoError(t, err)
	assert.Contains(t, out, "1 day")

	_, err = run(t, db, "status", id, "not_started")
	require.NoError(t, err)
	out, err = run(t, db, "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "No progress yet")

	_, err = run(t, db, "status", id, "finished")
	assert.Error(t, err)
}

func TestStatsPathRecommend(t *testing.T) {
	db := fileDB(t)
	id := firstLesson().ID
	_, err := run(t, db, "complete", id)
	require.NoError(t, err)

	out, err := run(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed:   1 of")

	out, err = run(t, db, "path")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed (1)")

	out, err = run(t, db, "recommend", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "2. ")
	assert.NotContains(t, out, "3. ")
	assert.NotContains(t, out, "   "+id+"\n")
}

func TestResetAndRestore(t *testing.T) {
	db := sqliteDB(t)
	id := firstLesson().ID
	_, err := run(t, db, "complete", id)
	require.NoError(t, err)

	out, err := run(t, db, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "--yes")

	_, err = run(t, db, "reset", "--yes")
	require.NoError(t, err)
	out, err = run(t, db, "status", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Not started")

	_, err = run(t, db, "restore")
	require.NoError(t, err)
	out, err = run(t, db, "status", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")

	out, err = run(t, db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, id)
}

func TestRestoreNeedsSQLite(t *testing.T) {
	_, err := run(t, fileDB(t), "restore")
	assert.ErrorContains(t, err, "sqlite")
}

func TestSettings(t *testing.T) {
	db := fileDB(t)

	out, err := run(t, db, "settings", "set", "--name", "Ada", "--role", "admin", "--notify-team-activity")
	require.NoError(t, err)
	assert.Contains(t, out, "Name:  Ada")

	out, err = run(t, db, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Role:  admin")
	assert.Contains(t, out, "team-activity: on")
	assert.Contains(t, out, "Team:  Engineering")

	_, err = run(t, db, "settings", "set", "--email", "not-an-email")
	assert.ErrorContains(t, err, "invalid settings")
}

func TestEphemeral(t *testing.T) {
	db := fileDB(t)
	id := firstLesson().ID

	_, err := run(t, db, "--ephemeral", "complete", id)
	require.NoError(t, err)
	out, err := run(t, db, "status", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Not started")
}

func TestDraft_Errors(t *testing.T) {
	db := fileDB(t)

	_, err := run(t, db, "draft", "--provider", "mock", "--tool", "Nope", "--title", "X")
	assert.ErrorContains(t, err, "invalid draft request")

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LESSONHUB_OPENAI_API_KEY", "")
	_, err = run(t, db, "draft", "--provider", "openai", "--tool", "Claude Code", "--title", "Hooks")
	assert.ErrorContains(t, err, "LLM provider not configured")
}

func TestDraft_MockProvider(t *testing.T) {
	db := sqliteDB(t)

	out, err := run(t, db, "draft", "--provider", "mock", "--tool", "Claude Code",
		"--title", "Hooks in Practice", "--difficulty", "intermediate")
	require.NoError(t, err)

	var lesson catalog.Lesson
	require.NoError(t, json.Unmarshal([]byte(out), &lesson))
	assert.Equal(t, "hooks-in-practice", lesson.ID)
	assert.Equal(t, "Claude Code", lesson.ToolName)
	assert.Equal(t, catalog.DifficultyIntermediate, lesson.Difficulty)
	assert.NotEmpty(t, lesson.Content)
	require.NoError(t, catalog.ValidateLesson(lesson))

	out, err = run(t, db, "llm", "list", "-p", "lesson-draft")
	require.NoError(t, err)
	assert.Contains(t, out, "lesson-draft")
	assert.Contains(t, out, "mock")

	out, err = run(t, db, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage by Purpose")
	assert.Contains(t, out, "lesson-draft")
}

func TestLLMStats_Empty(t *testing.T) {
	out, err := run(t, sqliteDB(t), "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")

	_, err = run(t, fileDB(t), "llm", "list")
	assert.ErrorContains(t, err, "sqlite")
}

func TestTagsAndTools(t *testing.T) {
	db := fileDB(t)
	out, err := run(t, db, "tools")
	require.NoError(t, err)
	assert.Contains(t, out, firstLesson().ToolName)

	out, err = run(t, db, "tags")
	require.NoError(t, err)
	assert.Contains(t, out, catalog.Default().Tags()[0])
}

func TestCorruptStore_DegradesToDefaults(t *testing.T) {
	tests := []struct {
		name string
		db   func(t *testing.T) string
	}{
		{"file", fileDB},
		{"sqlite", sqliteDB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := tt.db(t)
			require.NoError(t, os.WriteFile(db, []byte("{not json"), 0o644))

			out, err := run(t, db, "lessons")
			require.NoError(t, err)
			assert.Contains(t, out, firstLesson().ID)

			out, err = run(t, db, "streak")
			require.NoError(t, err)
			assert.Contains(t, out, "0 days")

			out, err = run(t, db, "progress")
			require.NoError(t, err)
			assert.Contains(t, out, "No progress yet")

			out, err = run(t, db, "settings", "show")
			require.NoError(t, err)
			assert.Contains(t, out, "Role:  member")
		})
	}
}

func TestCorruptFile_ReplacedOnNextWrite(t *testing.T) {
	db := fileDB(t)
	require.NoError(t, os.WriteFile(db, []byte("{not json"), 0o644))
	id := firstLesson().ID

	_, err := run(t, db, "complete", id)
	require.NoError(t, err)

	out, err := run(t, db, "status", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")
}

func TestUnavailableStore_SQLiteOnlyCommands(t *testing.T) {
	db := sqliteDB(t)
	require.NoError(t, os.WriteFile(db, []byte("{not json"), 0o644))

	_, err := run(t, db, "restore")
	assert.ErrorContains(t, err, "store unavailable")

	_, err = run(t, db, "llm", "stats")
	assert.ErrorContains(t, err, "store unavailable")
}
