package lessongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/lessonhub/internal/catalog"
)

const draftSystemPrompt = `You write concise, practical lessons for a team learning hub about AI tools. Lessons are read in a terminal, so keep them skimmable.`

func buildDraftUserMessage(req DraftRequest, tool catalog.ToolInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Tool: %s\n", tool.Name)
	fmt.Fprintf(&b, "Tool description: %s\n", tool.Description)
	if len(tool.Features) > 0 {
		fmt.Fprintf(&b, "Tool features: %s\n", strings.Join(tool.Features, ", "))
	}
	fmt.Fprintf(&b, "Lesson title: %s\n", req.Title)
	fmt.Fprintf(&b, "Category: %s\n", req.Category.DisplayName())
	fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty.DisplayName())
	if req.Audience != "" {
		fmt.Fprintf(&b, "Audience: %s\n", req.Audience)
	}

	b.WriteString(`
Instructions:
1. Write the lesson body in markdown. Start with a one-paragraph introduction, then 2-4 sections with ## headings.
2. Include at least one fenced code block or a numbered list of concrete steps.
3. Match the difficulty. Beginner lessons define every term; advanced lessons skip the basics.
4. Only include a course if you know a real public course URL for this topic.
5. Tags are lowercase single words or hyphenated phrases.`)

	return b.String()
}
