package markdown

import "strings"

// Span is a run of inline text. Bold and Code are never both set.
type Span struct {
	Text string
	Bold bool
	Code bool
}

// Inline splits text into plain, **bold** and `code` spans. Markers without
// a closing partner are kept as literal text.
func Inline(text string) []Span {
	var spans []Span
	var plain strings.Builder

	emit := func(s Span) {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String()})
			plain.Reset()
		}
		spans = append(spans, s)
	}

	for i := 0; i < len(text); {
		switch {
		case text[i] == '`':
			if end := strings.IndexByte(text[i+1:], '`'); end > 0 {
				emit(Span{Text: text[i+1 : i+1+end], Code: true})
				i += end + 2
				continue
			}
		case strings.HasPrefix(text[i:], "**"):
			if end := strings.Index(text[i+2:], "**"); end > 0 {
				emit(Span{Text: text[i+2 : i+2+end], Bold: true})
				i += end + 4
				continue
			}
		}
		plain.WriteByte(text[i])
		i++
	}

	if plain.Len() > 0 {
		spans = append(spans, Span{Text: plain.String()})
	}
	return spans
}

// PlainText strips inline markers, keeping span text.
func PlainText(text string) string {
	var b strings.Builder
	for _, s := range Inline(text) {
		b.WriteString(s.Text)
	}
	return b.String()
}
