package theme

import (
	"strings"
	"testing"

	"git.lost.host/meutraa/anticipate/internal/game"
)

func TestEveryPhaseHasAGlyph(t *testing.T) {
	th := &DefaultTheme{}
	for _, p := range []game.Phase{game.Approaching, game.Critical, game.Passed} {
		s := th.RenderPulse(p)
		if !strings.Contains(s, pulseSyms[p]) || !strings.HasSuffix(s, "\033[0m") {
			t.Fatalf("%v: unexpected rendering %q", p, s)
		}
	}
}

func TestFeedbackFades(t *testing.T) {
	th := &DefaultTheme{}
	young := th.RenderFeedback(game.Field, 0)
	old := th.RenderFeedback(game.Field, 0.99)
	if !strings.Contains(young, fieldSyms[0]) || !strings.Contains(old, fieldSyms[len(fieldSyms)-1]) {
		t.Fatalf("unexpected glyphs %q %q", young, old)
	}
	if s := th.RenderFeedback(game.Echo, 5); !strings.Contains(s, echoSyms[len(echoSyms)-1]) {
		t.Fatalf("expired echo should clamp to the last glyph, got %q", s)
	}
	if c := fade(Color{200, 100, 50}, 0.5); c != (Color{100, 50, 25}) {
		t.Fatalf("unexpected fade %v", c)
	}
}

func TestPatternDimsOutward(t *testing.T) {
	th := &DefaultTheme{}
	inner, outer := th.RenderPattern(false, 1, 6), th.RenderPattern(false, 5, 6)
	if inner == outer || !strings.Contains(inner, patternSym) {
		t.Fatalf("unexpected pattern glyphs %q %q", inner, outer)
	}
	if th.RenderPattern(true, 1, 12) == th.RenderPattern(true, 8, 12) {
		t.Fatal("flow rings should shift colour")
	}
	if th.RenderNode(true) == th.RenderNode(false) {
		t.Fatal("flow nodes should use the flow colour")
	}
}
