package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonhub/internal/progress"
)

func newStartCmd() *cobra.Command {
	return newSetStatusCmd("start", "Mark a lesson as in progress", progress.InProgress)
}

func newCompleteCmd() *cobra.Command {
	return newSetStatusCmd("complete", "Mark a lesson as completed", progress.Completed)
}

func newSetStatusCmd(use, short string, status progress.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				return setStatus(cmd, e, args[0], status)
			})
		},
	}
}

func setStatus(cmd *cobra.Command, e *env, id string, status progress.Status) error {
	l, err := lookupLesson(e, id)
	if err != nil {
		return err
	}
	if err := e.progress.SetStatus(cmd.Context(), l.ID, status); err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s: %s\n", statusMark(status), l.Title, status.DisplayName())
	if status == progress.Completed {
		fmt.Fprintf(w, "Streak: %s\n", days(e.progress.Streak(cmd.Context())))
	}
	return nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> [status]",
		Short: "Show or set a lesson's status",
		Long: "Show a lesson's status, or set it to one of " +
			"not_started, in_progress or completed.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				if len(args) == 2 {
					status, err := progress.ParseStatus(args[1])
					if err != nil {
						return err
					}
					return setStatus(cmd, e, args[0], status)
				}

				l, err := lookupLesson(e, args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				r, ok := e.progress.Get(cmd.Context(), l.ID)
				if !ok {
					fmt.Fprintf(w, "%s: %s\n", l.ID, progress.NotStarted.DisplayName())
					return nil
				}
				fmt.Fprintf(w, "%s: %s\n", l.ID, r.Status.DisplayName())
				if r.CompletedAt != nil {
					fmt.Fprintf(w, "  completed: %s\n", r.CompletedAt.In(e.progress.Location()).Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
}

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "List lessons you have started or completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				w := cmd.OutOrStdout()
				records := e.progress.Records(cmd.Context())
				if len(records) == 0 {
					fmt.Fprintln(w, "No progress yet. Try: lessonhub start <id>")
					return nil
				}
				for _, r := range records {
					title := r.LessonID
					if l, ok := e.catalog.Lesson(r.LessonID); ok {
						title = l.Title
					}
					fmt.Fprintf(w, "%s %-12s %-34s %s\n",
						statusMark(r.Status), r.Status.DisplayName(), truncate(r.LessonID, 34), title)
				}
				return nil
			})
		},
	}
}

func newStreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show your daily completion streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				w := cmd.OutOrStdout()
				n := e.progress.Streak(cmd.Context())
				fmt.Fprintf(w, "★ %s\n", days(n))
				if rec, ok := e.progress.StreakRecord(cmd.Context()); ok && rec.LastActivityDate != "" {
					fmt.Fprintf(w, "Last completion: %s\n", rec.LastActivityDate)
				}
				return nil
			})
		},
	}
}

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "Show recent lesson status changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withEnv(cmd, func(e *env) error {
				events, err := e.progress.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(events) == 0 {
					fmt.Fprintln(w, "No activity recorded.")
					return nil
				}
				loc := e.progress.Location()
				for _, ev := range events {
					status := progress.Status(ev.Status)
					fmt.Fprintf(w, "%s  %s %-12s %s\n",
						ev.Timestamp.In(loc).Format("2006-01-02 15:04"),
						statusMark(status), status.DisplayName(), ev.LessonID)
				}
				return nil
			})
		},
	}
	c.Flags().IntP("limit", "n", 20, "Number of events to show")
	return c
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// bar renders a text progress bar of the given width.
func bar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
