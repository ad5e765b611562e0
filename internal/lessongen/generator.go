package lessongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/llm"
)

// Generator drafts lessons through an llm.Provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
	clock    func() time.Time
}

// NewGenerator creates a Generator. A zero MaxTokens falls back to the
// default.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Generator{provider: provider, cfg: cfg, clock: time.Now}
}

type draftOutput struct {
	Summary          string   `json:"summary"`
	Content          string   `json:"content"`
	Tags             []string `json:"tags"`
	EstimatedMinutes int      `json:"estimated_minutes"`
	Course           *struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"course,omitempty"`
}

// Draft asks the model for a lesson and returns it once it passes catalog
// validation. The lesson's CreatedAt is today.
func (g *Generator) Draft(ctx context.Context, req DraftRequest) (catalog.Lesson, error) {
	tool, err := checkRequest(req)
	if err != nil {
		return catalog.Lesson{}, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeLessonDraft)
	resp, err := g.provider.Generate(ctx, llm.Request{
		System: draftSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDraftUserMessage(req, tool)},
		},
		Schema:      DraftSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return catalog.Lesson{}, fmt.Errorf("lesson draft: %w", err)
	}
	if resp.StopReason == "max_tokens" {
		return catalog.Lesson{}, &llm.ErrMaxTokensExceeded{Content: resp.Content}
	}

	var out draftOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return catalog.Lesson{}, fmt.Errorf("parse lesson draft: %w", err)
	}

	id := req.ID
	if id == "" {
		id = Slug(req.Title)
	}
	lesson := catalog.Lesson{
		ID:               id,
		Title:            strings.TrimSpace(req.Title),
		Summary:          strings.TrimSpace(out.Summary),
		Content:          strings.TrimSpace(out.Content),
		ToolName:         tool.Name,
		Category:         req.Category,
		Difficulty:       req.Difficulty,
		Tags:             normalizeTags(out.Tags),
		EstimatedMinutes: out.EstimatedMinutes,
		CreatedAt:        g.clock().Format("2006-01-02"),
	}
	if out.Course != nil && out.Course.URL != "" {
		lesson.Course = &catalog.ExternalCourse{Name: out.Course.Name, URL: out.Course.URL}
	}

	if err := catalog.ValidateLesson(lesson); err != nil {
		return catalog.Lesson{}, fmt.Errorf("drafted lesson is invalid: %w", err)
	}
	return lesson, nil
}

func checkRequest(req DraftRequest) (catalog.ToolInfo, error) {
	if strings.TrimSpace(req.Title) == "" {
		return catalog.ToolInfo{}, fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}
	tool, ok := catalog.ToolByName(req.Tool)
	if !ok {
		return catalog.ToolInfo{}, fmt.Errorf("%w: unknown tool %q", ErrInvalidRequest, req.Tool)
	}
	if !req.Category.Valid() {
		return catalog.ToolInfo{}, fmt.Errorf("%w: unknown category %q", ErrInvalidRequest, req.Category)
	}
	if !req.Difficulty.Valid() {
		return catalog.ToolInfo{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, req.Difficulty)
	}
	return tool, nil
}

// Slug turns a title into a lowercase hyphenated id.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
