package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lessonhub/internal/progress"
	"github.com/abhisek/lessonhub/internal/store"
)

// keepSnapshots is how many reset snapshots are retained.
const keepSnapshots = 5

// resetKeys are the blobs a reset clears and a restore brings back.
var resetKeys = []string{progress.ProgressKey, progress.StreakKey}

func newResetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reset",
		Short: "Clear all lesson progress and the streak",
		Long: "Clear all lesson progress and the streak. Settings are kept. " +
			"With the sqlite backend a snapshot is saved first; undo with 'lessonhub restore'.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			w := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintln(w, "This clears all lesson progress and your streak. Re-run with --yes to confirm.")
				return nil
			}

			return withEnv(cmd, func(e *env) error {
				ctx := cmd.Context()
				if e.snapshots != nil {
					snap := &store.Snapshot{
						Reason: "reset",
						Data:   e.progress.Raw(ctx, resetKeys...),
					}
					if err := e.snapshots.Save(ctx, snap); err != nil {
						return fmt.Errorf("save snapshot before reset: %w", err)
					}
					if err := e.snapshots.Prune(ctx, keepSnapshots); err != nil {
						e.logger.Warn("prune snapshots", zap.Error(err))
					}
				}
				e.progress.ResetAll(ctx)
				fmt.Fprintln(w, "Progress and streak cleared.")
				return nil
			})
		},
	}
	c.Flags().Bool("yes", false, "Confirm the reset")
	return c
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Undo the most recent reset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				if err := e.requireSQLite("restore"); err != nil {
					return err
				}
				ctx := cmd.Context()
				snap, err := e.snapshots.Latest(ctx)
				if err != nil {
					return fmt.Errorf("load snapshot: %w", err)
				}
				if snap == nil {
					return fmt.Errorf("no snapshot to restore")
				}
				e.progress.Restore(ctx, snap.Data, resetKeys...)
				fmt.Fprintf(cmd.OutOrStdout(), "Restored snapshot from %s.\n",
					snap.Timestamp.In(e.progress.Location()).Format("2006-01-02 15:04"))
				return nil
			})
		},
	}
}
