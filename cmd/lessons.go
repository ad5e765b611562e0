package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/markdown"
	"github.com/abhisek/lessonhub/internal/progress"
)

func newLessonsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "lessons",
		Short: "List lessons, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f catalog.Filter
			f.Tool, _ = cmd.Flags().GetString("tool")
			f.Query, _ = cmd.Flags().GetString("query")
			cat, _ := cmd.Flags().GetString("category")
			diff, _ := cmd.Flags().GetString("difficulty")
			f.Category = catalog.Category(cat)
			f.Difficulty = catalog.Difficulty(diff)
			if f.Category != "" && !f.Category.Valid() {
				return fmt.Errorf("unknown category %q", cat)
			}
			if f.Difficulty != "" && !f.Difficulty.Valid() {
				return fmt.Errorf("unknown difficulty %q", diff)
			}

			return withEnv(cmd, func(e *env) error {
				printLessons(cmd.OutOrStdout(), e.catalog.Apply(f), e.progress.All(cmd.Context()))
				return nil
			})
		},
	}
	c.Flags().String("tool", "", "Only lessons about this tool (exact name)")
	c.Flags().String("category", "", "Only lessons in this category")
	c.Flags().String("difficulty", "", "Only lessons at this difficulty")
	c.Flags().StringP("query", "q", "", "Only lessons matching this text")
	return c
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search lesson titles, summaries and tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				printLessons(cmd.OutOrStdout(), e.catalog.Search(strings.Join(args, " ")), e.progress.All(cmd.Context()))
				return nil
			})
		},
	}
}

func printLessons(w io.Writer, lessons []catalog.Lesson, records map[string]progress.Record) {
	if len(lessons) == 0 {
		fmt.Fprintln(w, "No lessons found.")
		return
	}
	fmt.Fprintf(w, "%-2s %-34s %-14s %-15s %-12s %4s\n", "", "ID", "Tool", "Category", "Difficulty", "Min")
	fmt.Fprintln(w, strings.Repeat("─", 86))
	for _, l := range lessons {
		fmt.Fprintf(w, "%-2s %-34s %-14s %-15s %-12s %4d\n",
			statusMark(records[l.ID].Status),
			truncate(l.ID, 34),
			truncate(l.ToolName, 14),
			l.Category.DisplayName(),
			l.Difficulty.DisplayName(),
			l.EstimatedMinutes)
	}
	fmt.Fprintf(w, "\n%d lesson(s)\n", len(lessons))
}

func statusMark(s progress.Status) string {
	switch s {
	case progress.Completed:
		return "✓"
	case progress.InProgress:
		return "◐"
	default:
		return "·"
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				l, err := lookupLesson(e, args[0])
				if err != nil {
					return err
				}
				status := progress.NotStarted
				if r, ok := e.progress.Get(cmd.Context(), l.ID); ok {
					status = r.Status
				}
				printLesson(cmd.OutOrStdout(), l, status)
				return nil
			})
		},
	}
}

func lookupLesson(e *env, id string) (catalog.Lesson, error) {
	l, ok := e.catalog.Lesson(id)
	if !ok {
		return catalog.Lesson{}, fmt.Errorf("lesson not found: %s", id)
	}
	return l, nil
}

func printLesson(w io.Writer, l catalog.Lesson, status progress.Status) {
	fmt.Fprintln(w, l.Title)
	fmt.Fprintln(w, strings.Repeat("═", len([]rune(l.Title))))
	fmt.Fprintln(w, l.Summary)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Tool:       %s\n", l.ToolName)
	fmt.Fprintf(w, "Category:   %s\n", l.Category.DisplayName())
	fmt.Fprintf(w, "Difficulty: %s\n", l.Difficulty.DisplayName())
	fmt.Fprintf(w, "Time:       %d min\n", l.EstimatedMinutes)
	fmt.Fprintf(w, "Status:     %s\n", status.DisplayName())
	if len(l.Tags) > 0 {
		fmt.Fprintf(w, "Tags:       %s\n", strings.Join(l.Tags, ", "))
	}
	if l.Course != nil {
		fmt.Fprintf(w, "Course:     %s <%s>\n", l.Course.Name, l.Course.URL)
	}
	fmt.Fprintln(w)
	writeMarkdown(w, l.Content)
}

// writeMarkdown prints lesson content as plain text.
func writeMarkdown(w io.Writer, src string) {
	for _, b := range markdown.Parse(src) {
		switch b.Kind {
		case markdown.KindHeading:
			title := markdown.PlainText(b.Text)
			fmt.Fprintln(w, title)
			if b.Level <= 2 {
				fmt.Fprintln(w, strings.Repeat("─", len([]rune(title))))
			}
		case markdown.KindCode:
			for _, line := range strings.Split(b.Text, "\n") {
				fmt.Fprintln(w, "    "+line)
			}
		case markdown.KindList:
			for i, item := range b.Items {
				bullet := "•"
				if b.Ordered {
					bullet = fmt.Sprintf("%d.", i+1)
				}
				fmt.Fprintf(w, "  %s %s\n", bullet, markdown.PlainText(item))
			}
		case markdown.KindQuote:
			fmt.Fprintln(w, "  │ "+markdown.PlainText(b.Text))
		default:
			fmt.Fprintln(w, markdown.PlainText(b.Text))
		}
		fmt.Fprintln(w)
	}
}

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools lessons cover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				w := cmd.OutOrStdout()
				for _, name := range e.catalog.Tools() {
					n := len(e.catalog.ByTool(name))
					if info, ok := catalog.ToolByName(name); ok {
						fmt.Fprintf(w, "%-16s %3d lesson(s)  %s\n", name, n, info.Description)
						continue
					}
					fmt.Fprintf(w, "%-16s %3d lesson(s)\n", name, n)
				}
				return nil
			})
		},
	}
}

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every lesson tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				for _, t := range e.catalog.Tags() {
					fmt.Fprintln(cmd.OutOrStdout(), t)
				}
				return nil
			})
		},
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
