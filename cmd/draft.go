package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/lessongen"
	"github.com/abhisek/lessonhub/internal/llm"
)

func newDraftCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "draft",
		Short: "Draft a new lesson with the configured LLM",
		Long: "Draft a new lesson with the configured LLM and print it as JSON. " +
			"The provider is chosen from LESSONHUB_LLM_PROVIDER or the first API key found.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var req lessongen.DraftRequest
			req.ID, _ = f.GetString("id")
			req.Tool, _ = f.GetString("tool")
			req.Title, _ = f.GetString("title")
			req.Audience, _ = f.GetString("audience")
			cat, _ := f.GetString("category")
			diff, _ := f.GetString("difficulty")
			req.Category = catalog.Category(cat)
			req.Difficulty = catalog.Difficulty(diff)
			providerName, _ := f.GetString("provider")

			return withEnv(cmd, func(e *env) error {
				cfg := e.cfg.LLM
				if providerName != "" {
					cfg.Provider = providerName
				}
				ctx, cancel := context.WithCancel(cmd.Context())
				if cfg.Timeout > 0 {
					ctx, cancel = context.WithTimeout(cmd.Context(), cfg.Timeout)
				}
				defer cancel()

				provider, err := llm.NewProvider(ctx, cfg, e.logger, e.events)
				if err != nil {
					return fmt.Errorf("LLM provider not configured: %w", err)
				}

				genCfg := lessongen.DefaultConfig()
				if cfg.MaxTokens > 0 {
					genCfg.MaxTokens = cfg.MaxTokens
				}
				gen := lessongen.NewGenerator(provider, genCfg)
				lesson, err := gen.Draft(ctx, req)
				if err != nil {
					return err
				}
				out, err := json.MarshalIndent(lesson, "", "  ")
				if err != nil {
					return fmt.Errorf("encode lesson: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			})
		},
	}
	f := c.Flags()
	f.String("tool", "", "Tool the lesson is about (see 'lessonhub tools')")
	f.String("title", "", "Lesson title")
	f.String("category", string(catalog.CategoryCoding), "Lesson category")
	f.String("difficulty", string(catalog.DifficultyBeginner), "Lesson difficulty")
	f.String("audience", "", "Who the lesson is for")
	f.String("id", "", "Lesson id (default: derived from the title)")
	f.String("provider", "", "LLM provider: anthropic, openai, openrouter, gemini or mock")
	_ = c.MarkFlagRequired("tool")
	_ = c.MarkFlagRequired("title")
	return c
}
