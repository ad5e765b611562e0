// Package markdown parses the small markdown subset used in lesson bodies
// into blocks that the terminal UI can style.
package markdown

import (
	"strings"
)

// Kind identifies the type of a Block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindCode
	KindList
	KindQuote
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindCode:
		return "code"
	case KindList:
		return "list"
	case KindQuote:
		return "quote"
	default:
		return "unknown"
	}
}

// Block is one top-level element of a document. Which fields are set
// depends on Kind.
type Block struct {
	Kind Kind

	// Text holds paragraph, heading and quote text, or the raw body of a
	// code block.
	Text string

	// Level is the heading level, 1 to 4.
	Level int

	// Lang is the info string of a fenced code block.
	Lang string

	// Items and Ordered describe a list.
	Items   []string
	Ordered bool
}

const maxHeadingLevel = 4

// Parse splits a markdown document into blocks. Unclosed code fences run to
// the end of the input.
func Parse(src string) []Block {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	p := &parser{}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if lang, ok := fenceOpen(trimmed); ok {
			p.flush()
			var body []string
			for i++; i < len(lines); i++ {
				if strings.TrimSpace(lines[i]) == "```" {
					break
				}
				body = append(body, lines[i])
			}
			p.blocks = append(p.blocks, Block{Kind: KindCode, Lang: lang, Text: strings.Join(body, "\n")})
			continue
		}

		if trimmed == "" {
			p.flush()
			continue
		}

		if level, text, ok := heading(trimmed); ok {
			p.flush()
			p.blocks = append(p.blocks, Block{Kind: KindHeading, Level: level, Text: text})
			continue
		}

		if item, ordered, ok := listItem(trimmed); ok {
			if p.cur == nil || p.cur.Kind != KindList || p.cur.Ordered != ordered {
				p.start(Block{Kind: KindList, Ordered: ordered})
			}
			p.cur.Items = append(p.cur.Items, item)
			continue
		}

		if text, ok := strings.CutPrefix(trimmed, ">"); ok {
			text = strings.TrimSpace(text)
			if p.cur == nil || p.cur.Kind != KindQuote {
				p.start(Block{Kind: KindQuote, Text: text})
			} else {
				p.cur.Text = joinText(p.cur.Text, text)
			}
			continue
		}

		// Indented lines continue the previous list item.
		if p.cur != nil && p.cur.Kind == KindList && line != trimmed {
			last := len(p.cur.Items) - 1
			p.cur.Items[last] = joinText(p.cur.Items[last], trimmed)
			continue
		}

		if p.cur == nil || p.cur.Kind != KindParagraph {
			p.start(Block{Kind: KindParagraph, Text: trimmed})
		} else {
			p.cur.Text = joinText(p.cur.Text, trimmed)
		}
	}
	p.flush()
	return p.blocks
}

type parser struct {
	blocks []Block
	cur    *Block
}

func (p *parser) start(b Block) {
	p.flush()
	p.cur = &b
}

func (p *parser) flush() {
	if p.cur != nil {
		p.blocks = append(p.blocks, *p.cur)
		p.cur = nil
	}
}

func joinText(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}

func fenceOpen(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "```")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func heading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel || level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(line[level:]), true
}

func listItem(line string) (string, bool, bool) {
	for _, marker := range []string{"- ", "* "} {
		if rest, ok := strings.CutPrefix(line, marker); ok {
			return strings.TrimSpace(rest), false, true
		}
	}

	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return "", false, false
	}
	if rest, ok := strings.CutPrefix(line[digits:], ". "); ok {
		return strings.TrimSpace(rest), true, true
	}
	return "", false, false
}
