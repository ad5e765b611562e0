package catalog

import (
	"slices"
	"strings"
	"testing"
)

func fixture() []Lesson {
	return []Lesson{
		{
			ID: "mcp-intro", Title: "Introduction to MCP", Summary: "Connect tools over a protocol.",
			Content: "# MCP", ToolName: "MCP", Category: CategoryAutomation, Difficulty: DifficultyBeginner,
			Tags: []string{"mcp", "protocol"}, EstimatedMinutes: 20, CreatedAt: "2025-01-10",
		},
		{
			ID: "api-setup", Title: "API Setup", Summary: "First requests with the SDK.",
			Content: "# API", ToolName: "Claude API", Category: CategoryCoding, Difficulty: DifficultyBeginner,
			Tags: []string{"api", "getting-started"}, EstimatedMinutes: 15, CreatedAt: "2025-01-12",
		},
		{
			ID: "api-agents", Title: "Building Agents", Summary: "Orchestrate MCP servers and tools.",
			Content: "# Agents", ToolName: "Claude API", Category: CategoryCoding, Difficulty: DifficultyAdvanced,
			Tags: []string{"agents", "orchestration"}, EstimatedMinutes: 40, CreatedAt: "2025-02-20",
		},
		{
			ID: "slack-bot", Title: "Slack Bot", Summary: "Answer questions in channels.",
			Content: "# Slack", ToolName: "Claude API", Category: CategoryCommunication, Difficulty: DifficultyIntermediate,
			Tags: []string{"slack", "automation"}, EstimatedMinutes: 25, CreatedAt: "2025-01-30",
		},
	}
}

func mustNew(t *testing.T, lessons []Lesson) *Catalog {
	t.Helper()
	c, err := New(lessons)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func ids(lessons []Lesson) []string {
	out := make([]string, len(lessons))
	for i, l := range lessons {
		out[i] = l.ID
	}
	return out
}

func TestDefault_SeedIsValid(t *testing.T) {
	if err := validateLessons(seedLessons); err != nil {
		t.Fatalf("seed lessons invalid: %v", err)
	}
	c := Default()
	if c.Len() != len(seedLessons) {
		t.Errorf("Len() = %d, want %d", c.Len(), len(seedLessons))
	}
	if c.Len() != 26 {
		t.Errorf("got %d seed lessons, want 26", c.Len())
	}
}

func TestDefault_SeedTools(t *testing.T) {
	want := []string{"Claude", "Claude Code", "MCP", "Claude API", "Claude Cowork", "AI Connectors"}
	if got := Default().Tools(); !slices.Equal(got, want) {
		t.Errorf("Tools() = %v, want %v", got, want)
	}
}

func TestLesson_Found(t *testing.T) {
	c := mustNew(t, fixture())
	l, ok := c.Lesson("api-setup")
	if !ok {
		t.Fatal("expected lesson to be found")
	}
	if l.Title != "API Setup" {
		t.Errorf("got title %q, want %q", l.Title, "API Setup")
	}
}

func TestLesson_NotFound(t *testing.T) {
	c := mustNew(t, fixture())
	if _, ok := c.Lesson("nope"); ok {
		t.Error("expected lesson to be absent")
	}
	if _, ok := c.Lesson(""); ok {
		t.Error("expected empty id to be absent")
	}
}

func TestByTool(t *testing.T) {
	c := mustNew(t, fixture())
	tests := []struct {
		tool string
		want []string
	}{
		{"Claude API", []string{"api-setup", "api-agents", "slack-bot"}},
		{"MCP", []string{"mcp-intro"}},
		{"claude api", []string{}},
		{"Unknown", []string{}},
	}
	for _, tt := range tests {
		got := ids(c.ByTool(tt.tool))
		if !slices.Equal(got, tt.want) {
			t.Errorf("ByTool(%q) = %v, want %v", tt.tool, got, tt.want)
		}
	}
}

func TestByCategoryAndDifficulty(t *testing.T) {
	c := mustNew(t, fixture())
	if got := ids(c.ByCategory(CategoryCoding)); !slices.Equal(got, []string{"api-setup", "api-agents"}) {
		t.Errorf("ByCategory(coding) = %v", got)
	}
	if got := c.ByCategory(CategoryWorkflow); len(got) != 0 {
		t.Errorf("ByCategory(workflow) = %v, want empty", ids(got))
	}
	if got := ids(c.ByDifficulty(DifficultyBeginner)); !slices.Equal(got, []string{"mcp-intro", "api-setup"}) {
		t.Errorf("ByDifficulty(beginner) = %v", got)
	}
}

func TestSearch(t *testing.T) {
	c := mustNew(t, fixture())
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty matches all", "", []string{"mcp-intro", "api-setup", "api-agents", "slack-bot"}},
		{"title case-insensitive", "SLACK BOT", []string{"slack-bot"}},
		{"summary", "orchestrate", []string{"api-agents"}},
		{"tool name", "claude api", []string{"api-setup", "api-agents", "slack-bot"}},
		{"tag substring", "getting", []string{"api-setup"}},
		{"title or summary across lessons", "mcp", []string{"mcp-intro", "api-agents"}},
		{"no match", "kubernetes", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(c.Search(tt.query))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearch_AgreesWithFieldScan(t *testing.T) {
	c := Default()
	for _, q := range []string{"mcp", "API", "automation", "franzy", "x"} {
		var want []string
		for _, l := range c.All() {
			lq := strings.ToLower(q)
			hit := strings.Contains(strings.ToLower(l.Title), lq) ||
				strings.Contains(strings.ToLower(l.Summary), lq) ||
				strings.Contains(strings.ToLower(l.ToolName), lq) ||
				slices.ContainsFunc(l.Tags, func(tag string) bool { return strings.Contains(tag, lq) })
			if hit {
				want = append(want, l.ID)
			}
		}
		got := ids(c.Search(q))
		if len(want) == 0 {
			want = []string{}
		}
		if !slices.Equal(got, want) {
			t.Errorf("Search(%q) = %v, want %v", q, got, want)
		}
	}
}

func TestDistinctValues_FirstSeenOrder(t *testing.T) {
	c := mustNew(t, fixture())
	if got, want := c.Tools(), []string{"MCP", "Claude API"}; !slices.Equal(got, want) {
		t.Errorf("Tools() = %v, want %v", got, want)
	}
	wantCats := []Category{CategoryAutomation, CategoryCoding, CategoryCommunication}
	if got := c.Categories(); !slices.Equal(got, wantCats) {
		t.Errorf("Categories() = %v, want %v", got, wantCats)
	}
	wantTags := []string{"mcp", "protocol", "api", "getting-started", "agents", "orchestration", "slack", "automation"}
	if got := c.Tags(); !slices.Equal(got, wantTags) {
		t.Errorf("Tags() = %v, want %v", got, wantTags)
	}
}

func TestQueriesReturnCopies(t *testing.T) {
	c := mustNew(t, fixture())

	l, _ := c.Lesson("mcp-intro")
	l.Title = "changed"
	l.Tags[0] = "changed"

	all := c.All()
	all[0].Tags[1] = "changed"

	c.Tools()[0] = "changed"
	c.Tags()[0] = "changed"

	again, _ := c.Lesson("mcp-intro")
	if again.Title != "Introduction to MCP" {
		t.Errorf("title mutated through returned copy: %q", again.Title)
	}
	if !slices.Equal(again.Tags, []string{"mcp", "protocol"}) {
		t.Errorf("tags mutated through returned copy: %v", again.Tags)
	}
	if c.Tools()[0] != "MCP" || c.Tags()[0] != "mcp" {
		t.Error("distinct value lists mutated through returned copy")
	}
}

func TestNew_CopiesInput(t *testing.T) {
	in := fixture()
	c := mustNew(t, in)
	in[0].Title = "changed"
	in[0].Tags[0] = "changed"

	l, _ := c.Lesson("mcp-intro")
	if l.Title != "Introduction to MCP" || l.Tags[0] != "mcp" {
		t.Errorf("catalog observed change to input slice: %+v", l)
	}
}

func TestNew_Empty(t *testing.T) {
	c := mustNew(t, nil)
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if got := c.Search(""); got == nil || len(got) != 0 {
		t.Errorf("Search on empty catalog = %v, want empty non-nil", got)
	}
	if len(c.Tools()) != 0 {
		t.Errorf("Tools() = %v, want empty", c.Tools())
	}
}
