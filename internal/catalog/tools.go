package catalog

import "slices"

// ToolInfo describes one of the tools lessons are written about.
type ToolInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Icon        string   `json:"icon"`
	Category    string   `json:"category"`
}

var toolRegistry = []ToolInfo{
	{
		Name:        "Claude Code",
		Description: "AI-powered CLI for reading, editing, and managing codebases from the terminal.",
		Features: []string{
			"Natural language code editing",
			"Full codebase understanding",
			"Git operations (commit, PR, push)",
			"CLAUDE.md project configuration",
			"MCP integration for external tools",
			"GitHub @claude mentions",
			"Slash commands (/help, /review, etc.)",
		},
		Icon:     "terminal",
		Category: "Development",
	},
	{
		Name:        "Claude Cowork",
		Description: "GUI automation tool that can see your screen, click, type, and automate visual workflows.",
		Features: []string{
			"Visual GUI automation",
			"Scheduled task execution",
			"Sandboxed VM environment",
			"Plugin marketplace",
			"Live execution monitoring",
			"Screenshot and reporting",
		},
		Icon:     "monitor",
		Category: "Automation",
	},
	{
		Name:        "MCP",
		Description: "Model Context Protocol, the open standard for connecting AI to external tools and data sources.",
		Features: []string{
			"JSON-RPC protocol",
			"3,000+ community servers",
			"OAuth2 authentication",
			"Tool and resource exposure",
			"TypeScript & Python SDKs",
			"Claude Code integration",
		},
		Icon:     "plug",
		Category: "Infrastructure",
	},
	{
		Name:        "Claude API",
		Description: "Direct API access to Claude for building custom AI-powered applications.",
		Features: []string{
			"Tool use / function calling",
			"Structured outputs",
			"Web search capability",
			"Batch processing",
			"Vision (image understanding)",
			"Streaming responses",
			"System prompts",
		},
		Icon:     "code",
		Category: "Development",
	},
	{
		Name:        "AI Connectors",
		Description: "50+ pre-built integrations on Claude.ai. Connect to Google Drive, GitHub, Slack, and more.",
		Features: []string{
			"50+ service integrations",
			"No-code setup via Claude.ai",
			"OAuth secure connections",
			"Real-time data access",
			"Google Drive, Notion, GitHub, etc.",
		},
		Icon:     "link",
		Category: "Integrations",
	},
	{
		Name:        "Agent SDK",
		Description: "Build autonomous AI agents that plan, use tools, and complete multi-step tasks.",
		Features: []string{
			"Python & TypeScript support",
			"Multi-agent orchestration",
			"Tool use chains",
			"Error recovery",
			"Streaming execution",
			"Custom agent architectures",
		},
		Icon:     "bot",
		Category: "Development",
	},
}

// ToolRegistry returns descriptions of every known tool in display order.
func ToolRegistry() []ToolInfo {
	out := make([]ToolInfo, len(toolRegistry))
	for i, t := range toolRegistry {
		t.Features = slices.Clone(t.Features)
		out[i] = t
	}
	return out
}

// ToolByName looks up a tool description by exact name.
func ToolByName(name string) (ToolInfo, bool) {
	i := slices.IndexFunc(toolRegistry, func(t ToolInfo) bool { return t.Name == name })
	if i < 0 {
		return ToolInfo{}, false
	}
	t := toolRegistry[i]
	t.Features = slices.Clone(t.Features)
	return t, true
}
