package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LESSONHUB_DB", "LESSONHUB_BACKEND", "LESSONHUB_LOG_LEVEL", "LESSONHUB_TZ",
		"LESSONHUB_LLM_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := FromEnv()
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.TimeZone)
	assert.NoError(t, cfg.Validate())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LESSONHUB_DB", "/tmp/x.json")
	t.Setenv("LESSONHUB_BACKEND", "file")
	t.Setenv("LESSONHUB_LOG_LEVEL", "debug")
	t.Setenv("LESSONHUB_TZ", "Asia/Kolkata")
	t.Setenv("LESSONHUB_LLM_PROVIDER", "mock")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/tmp/x.json", cfg.DBPath)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "mock", cfg.LLM.Provider)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestFromEnv_DiscoversProviderKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := FromEnv()
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Backend = "postgres" }},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"bad time zone", func(c *Config) { c.TimeZone = "Mars/Olympus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("LESSONHUB_BACKEND=memory\nLESSONHUB_LOG_LEVEL=error\n"), 0o644))
	t.Chdir(dir)
	t.Cleanup(func() {
		os.Unsetenv("LESSONHUB_BACKEND")
		os.Unsetenv("LESSONHUB_LOG_LEVEL")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_EnvWinsOverDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("LESSONHUB_BACKEND=memory\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("LESSONHUB_BACKEND", "file")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
}

func TestLoad_MissingDotEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
}
