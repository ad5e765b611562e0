package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lessonhub/internal/app"
)

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command) error {
	return withEnv(cmd, func(e *env) error {
		return app.Run(cmd.Context(), app.Options{
			Catalog:  e.catalog,
			Progress: e.progress,
			Logger:   e.logger,
		})
	})
}
