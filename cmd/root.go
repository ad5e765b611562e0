package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/config"
	"github.com/abhisek/lessonhub/internal/logging"
	"github.com/abhisek/lessonhub/internal/progress"
	"github.com/abhisek/lessonhub/internal/store"
)

// newRootCmd builds the command tree. A fresh tree per call keeps flag
// state from leaking between executions.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lessonhub",
		Short: "Bite-sized lessons on the AI tools your team uses",
		Long: "lessonhub is a terminal learning hub for AI developer tools. " +
			"Browse the lesson catalog, track your progress and keep a daily streak.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("db", "", "Path to the database or JSON file (overrides LESSONHUB_DB)")
	flags.String("backend", "", "Storage backend: sqlite, file or memory (overrides LESSONHUB_BACKEND)")
	flags.Bool("ephemeral", false, "Keep progress in memory only; nothing is saved")
	flags.String("log-level", "", "Log level: debug, info, warn or error (overrides LESSONHUB_LOG_LEVEL)")

	root.AddCommand(
		newLessonsCmd(),
		newShowCmd(),
		newSearchCmd(),
		newToolsCmd(),
		newTagsCmd(),
		newStartCmd(),
		newCompleteCmd(),
		newStatusCmd(),
		newProgressCmd(),
		newStreakCmd(),
		newPathCmd(),
		newStatsCmd(),
		newRecommendCmd(),
		newHistoryCmd(),
		newResetCmd(),
		newRestoreCmd(),
		newSettingsCmd(),
		newDraftCmd(),
		newLLMCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// env is everything a command needs, opened from config and flags.
type env struct {
	cfg       config.Config
	logger    *zap.Logger
	catalog   *catalog.Catalog
	progress  *progress.Store
	events    store.EventRepo
	llmEvents store.LLMEventReader
	snapshots store.SnapshotRepo
	closeFn   func() error
	// storeErr is set when the backend could not be opened and progress
	// runs on unavailable storage.
	storeErr error
}

func (e *env) Close() error {
	_ = e.logger.Sync()
	if e.closeFn != nil {
		return e.closeFn()
	}
	return nil
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Backend = config.Backend(b)
	}
	if eph, _ := cmd.Flags().GetBool("ephemeral"); eph {
		cfg.Backend = config.BackendMemory
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	return cfg, cfg.Validate()
}

// openEnv resolves configuration and opens the configured backend.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, logger: logger, catalog: catalog.Default()}
	opts := []progress.Option{progress.WithLogger(logger), progress.WithLocation(loc)}

	kv, err := openBackend(e, cfg, &opts)
	if err != nil {
		// Reads fall back to defaults and writes are dropped; catalog
		// commands keep working.
		logger.Warn("storage unavailable, progress will not be saved",
			zap.String("backend", string(cfg.Backend)), zap.Error(err))
		e.storeErr = err
	}

	e.progress = progress.NewStore(kv, opts...)
	return e, nil
}

// openBackend opens the configured KV and fills in the sqlite-only parts
// of e. opts gains the activity log when the backend has one.
func openBackend(e *env, cfg config.Config, opts *[]progress.Option) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		*opts = append(*opts, progress.WithActivityLog(store.NewMemoryActivityLog()))
		return store.NewMemory(), nil

	case config.BackendFile:
		path, err := resolvePath(cfg.DBPath, "lessonhub.json")
		if err != nil {
			return nil, fmt.Errorf("resolve data path: %w", err)
		}
		f, err := store.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		if err := f.LoadErr(); err != nil {
			e.logger.Warn("data file is corrupt, starting empty",
				zap.String("path", path), zap.Error(err))
		}
		e.logger.Debug("store opened", zap.String("backend", "file"), zap.String("path", path))
		return f, nil

	default:
		path, err := resolvePath(cfg.DBPath, "")
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		*opts = append(*opts, progress.WithActivityLog(st.ActivityLog()))
		e.events = st.EventRepo()
		e.llmEvents = st.LLMEvents()
		e.snapshots = st.SnapshotRepo()
		e.closeFn = st.Close
		e.logger.Debug("store opened", zap.String("backend", "sqlite"), zap.String("path", path))
		return st.KV(), nil
	}
}

// requireSQLite reports why a sqlite-only command cannot run.
func (e *env) requireSQLite(what string) error {
	if e.storeErr != nil {
		return fmt.Errorf("%s: store unavailable: %w", what, e.storeErr)
	}
	if e.snapshots == nil {
		return fmt.Errorf("%s needs the sqlite backend (current: %s)", what, e.cfg.Backend)
	}
	return nil
}

// resolvePath returns explicit when set, otherwise the default database
// path with its file name replaced by name when name is non-empty.
func resolvePath(explicit, name string) (string, error) {
	if explicit != "" {
		return explicit, store.EnsureDir(explicit)
	}
	p, err := store.DefaultDBPath()
	if err != nil {
		return "", err
	}
	if name != "" {
		p = filepath.Join(filepath.Dir(p), name)
	}
	return p, nil
}

// withEnv opens the environment for the duration of fn.
func withEnv(cmd *cobra.Command, fn func(e *env) error) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}
