package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonhub/internal/markdown"
	"github.com/abhisek/lessonhub/internal/ui/theme"
)

// RenderMarkdown styles a lesson body for the terminal and wraps it to
// width. The result is split into lines so callers can scroll it.
func RenderMarkdown(src string, width int) []string {
	if width < 20 {
		width = 20
	}

	var out []string
	for i, b := range markdown.Parse(src) {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, strings.Split(renderBlock(b, width), "\n")...)
	}
	return out
}

func renderBlock(b markdown.Block, width int) string {
	switch b.Kind {
	case markdown.KindHeading:
		style := theme.SubHeading
		if b.Level <= 2 {
			style = theme.Heading
		}
		return style.Width(width).Render(renderInline(b.Text, style))

	case markdown.KindCode:
		body := b.Text
		if b.Lang != "" {
			body = lipgloss.NewStyle().Foreground(theme.TextDim).Render(b.Lang) + "\n" + body
		}
		return theme.CodeBlock.Width(width).Render(body)

	case markdown.KindList:
		markers := make([]string, len(b.Items))
		widest := 0
		for i := range b.Items {
			markers[i] = "•"
			if b.Ordered {
				markers[i] = fmt.Sprintf("%d.", i+1)
			}
			widest = max(widest, lipgloss.Width(markers[i]))
		}
		// One space before the marker and one after the widest marker.
		gutter := lipgloss.NewStyle().Width(widest + 2).Foreground(theme.Secondary)
		lines := make([]string, len(b.Items))
		for i, item := range b.Items {
			text := lipgloss.NewStyle().Width(width - widest - 2).Render(renderInline(item, theme.Body))
			lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, gutter.Render(" "+markers[i]), text)
		}
		return strings.Join(lines, "\n")

	case markdown.KindQuote:
		return theme.Quote.Width(width).Render(renderInline(b.Text, quoteText))

	default:
		return lipgloss.NewStyle().Width(width).Render(renderInline(b.Text, theme.Body))
	}
}

func renderInline(text string, base lipgloss.Style) string {
	var b strings.Builder
	for _, span := range markdown.Inline(text) {
		switch {
		case span.Code:
			b.WriteString(theme.InlineCode.Render(span.Text))
		case span.Bold:
			b.WriteString(base.Bold(true).Render(span.Text))
		default:
			b.WriteString(base.Render(span.Text))
		}
	}
	return b.String()
}

var quoteText = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
