package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonhub/internal/llm"
	"github.com/abhisek/lessonhub/internal/store"
)

func newLLMCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "llm",
		Short: "Inspect recorded LLM requests",
	}
	c.AddCommand(newLLMListCmd(), newLLMStatsCmd())
	return c
}

// withLLMEvents opens the environment and requires an LLM event log.
func withLLMEvents(cmd *cobra.Command, fn func(e *env, r store.LLMEventReader) error) error {
	return withEnv(cmd, func(e *env) error {
		if err := e.requireSQLite("LLM request log"); err != nil {
			return err
		}
		return fn(e, e.llmEvents)
	})
}

func newLLMListCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List recent LLM requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			purpose, _ := cmd.Flags().GetString("purpose")

			return withLLMEvents(cmd, func(e *env, r store.LLMEventReader) error {
				events, err := r.QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
				if err != nil {
					return fmt.Errorf("query events: %w", err)
				}
				w := cmd.OutOrStdout()
				if len(events) == 0 {
					fmt.Fprintln(w, "No LLM events found.")
					return nil
				}

				fmt.Fprintf(w, "%-5s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
					"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
				fmt.Fprintln(w, strings.Repeat("─", 100))
				for _, ev := range events {
					if purpose != "" && ev.Purpose != purpose {
						continue
					}
					ok := "✓"
					if !ev.Success {
						ok = "✗"
					}
					fmt.Fprintf(w, "%-5d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
						ev.Sequence,
						ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
						truncate(ev.Purpose, 14),
						truncate(ev.Model, 28),
						ev.InputTokens,
						ev.OutputTokens,
						ev.LatencyMs,
						ok,
					)
				}
				return nil
			})
		},
	}
	c.Flags().IntP("limit", "n", 20, "Number of events to show")
	c.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. lesson-draft)")
	return c
}

func newLLMStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregated LLM token usage and estimated cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLLMEvents(cmd, func(e *env, r store.LLMEventReader) error {
				ctx := cmd.Context()
				w := cmd.OutOrStdout()
				stats, err := r.LLMUsageByPurpose(ctx)
				if err != nil {
					return fmt.Errorf("query usage: %w", err)
				}
				if len(stats) == 0 {
					fmt.Fprintln(w, "No LLM usage recorded yet.")
					return nil
				}

				fmt.Fprintln(w, "Usage by Purpose")
				fmt.Fprintln(w, strings.Repeat("─", 72))
				fmt.Fprintf(w, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
					"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
				fmt.Fprintln(w, strings.Repeat("─", 72))

				var totalCalls, totalIn, totalOut int
				for _, st := range stats {
					fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
						truncate(st.Key, 16), st.Calls, st.InputTokens, st.OutputTokens,
						st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
					totalCalls += st.Calls
					totalIn += st.InputTokens
					totalOut += st.OutputTokens
				}
				fmt.Fprintln(w, strings.Repeat("─", 72))
				fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d\n",
					"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)

				models, err := r.LLMUsageByModel(ctx)
				if err != nil {
					return fmt.Errorf("query model usage: %w", err)
				}

				fmt.Fprintln(w)
				fmt.Fprintln(w, "Estimated Cost (USD)")
				fmt.Fprintln(w, strings.Repeat("─", 72))
				fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
				fmt.Fprintln(w, strings.Repeat("─", 72))

				var totalCost float64
				var unknown []string
				for _, mu := range models {
					cost := llm.LookupCost(mu.Key)
					if cost == nil {
						unknown = append(unknown, mu.Key)
						fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
							truncate(mu.Key, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
						continue
					}
					c := cost.Cost(mu.InputTokens, mu.OutputTokens)
					totalCost += c
					fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
						truncate(mu.Key, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
				}
				fmt.Fprintln(w, strings.Repeat("─", 72))
				label := "TOTAL"
				if len(unknown) > 0 {
					label = "TOTAL (partial)"
				}
				fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))
				if len(unknown) > 0 {
					fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
				}
				return nil
			})
		},
	}
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
