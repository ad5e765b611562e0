package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestStreakLabel(t *testing.T) {
	tests := map[int]string{0: "★ 0 days", 1: "★ 1 day", 7: "★ 7 days"}
	for n, want := range tests {
		if got := StreakLabel(n); got != want {
			t.Errorf("StreakLabel(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	header := RenderHeader("Library", 3, 80)
	if h := strings.Count(header, "\n") + 1; h != HeaderHeight {
		t.Errorf("header height = %d, want %d", h, HeaderHeight)
	}
	plain := ansi.Strip(header)
	for _, want := range []string{"lessonhub", "Library", "★ 3 days"} {
		if !strings.Contains(plain, want) {
			t.Errorf("header missing %q:\n%s", want, plain)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	footer := ansi.Strip(RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}, {Key: "q", Description: "Quit"}}, 60))
	if !strings.Contains(footer, "Esc Back   q Quit") {
		t.Errorf("footer = %q", footer)
	}
}

func TestSizes(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) || !IsTooSmall(MinWidth, MinHeight-1) {
		t.Error("below minimum should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
	if !IsCompactWidth(CompactWidthThreshold-1) || IsCompactWidth(CompactWidthThreshold) {
		t.Error("compact width threshold misplaced")
	}
}

func TestRenderFrameHeight(t *testing.T) {
	frame := RenderFrame(RenderHeader("", 0, 60), "body", RenderFooter(nil, 60), 60, 20)
	if h := strings.Count(frame, "\n") + 1; h != 20 {
		t.Errorf("frame height = %d, want 20", h)
	}
}
