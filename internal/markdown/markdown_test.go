package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessonhub/internal/catalog"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Block
	}{
		{
			name: "empty",
			src:  "",
			want: nil,
		},
		{
			name: "headings",
			src:  "# One\n## Two\n### Three\n#### Four\n##### Five",
			want: []Block{
				{Kind: KindHeading, Level: 1, Text: "One"},
				{Kind: KindHeading, Level: 2, Text: "Two"},
				{Kind: KindHeading, Level: 3, Text: "Three"},
				{Kind: KindHeading, Level: 4, Text: "Four"},
				{Kind: KindParagraph, Text: "##### Five"},
			},
		},
		{
			name: "hash without space is text",
			src:  "#hashtag",
			want: []Block{{Kind: KindParagraph, Text: "#hashtag"}},
		},
		{
			name: "paragraph lines join",
			src:  "first line\nsecond line\n\nnext paragraph",
			want: []Block{
				{Kind: KindParagraph, Text: "first line second line"},
				{Kind: KindParagraph, Text: "next paragraph"},
			},
		},
		{
			name: "code fence keeps body verbatim",
			src:  "```python\nimport os\n\n  print(os.getcwd())\n```\nafter",
			want: []Block{
				{Kind: KindCode, Lang: "python", Text: "import os\n\n  print(os.getcwd())"},
				{Kind: KindParagraph, Text: "after"},
			},
		},
		{
			name: "unclosed fence runs to end",
			src:  "```\n# not a heading",
			want: []Block{{Kind: KindCode, Text: "# not a heading"}},
		},
		{
			name: "unordered list",
			src:  "- one\n* two\n  continued\n- three",
			want: []Block{
				{Kind: KindList, Items: []string{"one", "two continued", "three"}},
			},
		},
		{
			name: "ordered then unordered",
			src:  "1. first\n2. second\n- bullet",
			want: []Block{
				{Kind: KindList, Ordered: true, Items: []string{"first", "second"}},
				{Kind: KindList, Items: []string{"bullet"}},
			},
		},
		{
			name: "number without dot is text",
			src:  "2025 was a good year",
			want: []Block{{Kind: KindParagraph, Text: "2025 was a good year"}},
		},
		{
			name: "quote",
			src:  "> keep it\n> short\n\ntext",
			want: []Block{
				{Kind: KindQuote, Text: "keep it short"},
				{Kind: KindParagraph, Text: "text"},
			},
		},
		{
			name: "crlf",
			src:  "## Title\r\nbody\r\n",
			want: []Block{
				{Kind: KindHeading, Level: 2, Text: "Title"},
				{Kind: KindParagraph, Text: "body"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.src))
		})
	}
}

func TestParse_SeedLessons(t *testing.T) {
	for _, l := range catalog.Default().All() {
		blocks := Parse(l.Content)
		require.NotEmpty(t, blocks, l.ID)
		for _, b := range blocks {
			if b.Kind == KindHeading {
				assert.True(t, b.Level >= 1 && b.Level <= 4, "%s: heading level %d", l.ID, b.Level)
			}
			if b.Kind == KindList {
				assert.NotEmpty(t, b.Items, l.ID)
			}
		}
	}
}

func TestInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{"plain", "just text", []Span{{Text: "just text"}}},
		{"empty", "", nil},
		{"bold", "a **b** c", []Span{{Text: "a "}, {Text: "b", Bold: true}, {Text: " c"}}},
		{"code", "run `go test` now", []Span{{Text: "run "}, {Text: "go test", Code: true}, {Text: " now"}}},
		{"code hides bold", "`**x**`", []Span{{Text: "**x**", Code: true}}},
		{"unclosed bold", "**open", []Span{{Text: "**open"}}},
		{"unclosed code", "a `b", []Span{{Text: "a `b"}}},
		{"empty markers", "****", []Span{{Text: "****"}}},
		{"adjacent", "**a**`b`", []Span{{Text: "a", Bold: true}, {Text: "b", Code: true}}},
		{"unicode", "→ **café**", []Span{{Text: "→ "}, {Text: "café", Bold: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Inline(tt.in))
		})
	}
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Use the Skills API", PlainText("Use the **Skills** `API`"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "code", KindCode.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
