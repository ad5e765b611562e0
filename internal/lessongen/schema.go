package lessongen

import "github.com/abhisek/lessonhub/internal/llm"

// DraftSchema is the JSON shape requested from the model.
var DraftSchema = &llm.Schema{
	Name:        "lesson-draft",
	Description: "A short markdown lesson about one tool feature",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "One sentence describing what the reader will learn",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "Lesson body in markdown with ## headings, lists and fenced code",
			},
			"tags": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-5 short lowercase tags",
			},
			"estimated_minutes": map[string]any{
				"type":    "integer",
				"minimum": 1,
			},
			"course": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string"},
					"url":  map[string]any{"type": "string"},
				},
				"required":             []any{"name", "url"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"summary", "content", "tags", "estimated_minutes"},
		"additionalProperties": false,
	},
}
