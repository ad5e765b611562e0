package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/insights"
	"github.com/abhisek/lessonhub/internal/progress"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				w := cmd.OutOrStdout()
				sum := insights.Summarize(e.catalog, e.progress.All(cmd.Context()))

				fmt.Fprintf(w, "Streak:      %s\n", days(e.progress.Streak(cmd.Context())))
				fmt.Fprintf(w, "Completed:   %d of %d (%.1f%%)\n", sum.Completed, sum.Total, sum.Percent)
				fmt.Fprintf(w, "In progress: %d\n", sum.InProgress)
				fmt.Fprintf(w, "Not started: %d\n", sum.NotStarted)
				fmt.Fprintln(w)
				fmt.Fprintln(w, "By category")
				fmt.Fprintln(w, strings.Repeat("─", 52))
				for _, cc := range sum.ByCategory {
					fmt.Fprintf(w, "%-16s %s %2d/%-2d\n",
						cc.Category.DisplayName(), bar(cc.Completed, cc.Total, 24), cc.Completed, cc.Total)
				}
				return nil
			})
		},
	}
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show your learning path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				w := cmd.OutOrStdout()
				p := insights.BuildPath(e.catalog, e.progress.All(cmd.Context()))
				printSection(w, "Completed", progress.Completed, p.Completed)
				printSection(w, "In Progress", progress.InProgress, p.InProgress)
				printSection(w, "Up Next", progress.NotStarted, p.UpNext)
				return nil
			})
		},
	}
}

func printSection(w io.Writer, title string, status progress.Status, lessons []catalog.Lesson) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(lessons))
	if len(lessons) == 0 {
		fmt.Fprintln(w, "   nothing here yet")
	}
	for _, l := range lessons {
		fmt.Fprintf(w, " %s %-34s %s\n", statusMark(status), truncate(l.ID, 34), l.Title)
	}
	fmt.Fprintln(w)
}

func newRecommendCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest what to learn next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			return withEnv(cmd, func(e *env) error {
				w := cmd.OutOrStdout()
				now := time.Now().In(e.progress.Location())
				recs := insights.Recommend(e.catalog, e.progress.All(cmd.Context()), now, limit)
				if len(recs) == 0 {
					fmt.Fprintln(w, "You have completed every lesson.")
					return nil
				}
				for i, r := range recs {
					fmt.Fprintf(w, "%d. %s (%.2f)\n   %s\n   %s\n",
						i+1, r.Lesson.Title, r.Score, r.Lesson.ID, strings.Join(r.Reasons, " · "))
				}
				return nil
			})
		},
	}
	c.Flags().IntP("limit", "n", insights.DefaultLimit, "Number of recommendations")
	return c
}
