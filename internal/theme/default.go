package theme

import (
	"fmt"

	"git.lost.host/meutraa/anticipate/internal/game"
)

type Color struct {
	R, G, B uint8
}

type DefaultTheme struct {
}

func paint(c Color, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderPulse(phase game.Phase) string {
	return paint(phaseColors[phase], pulseSyms[phase])
}

func (t *DefaultTheme) RenderTether() string {
	return paint(phaseColors[game.Critical], tetherSym)
}

func (t *DefaultTheme) RenderCore(flow bool) string {
	if flow {
		return paint(flowColor, coreSym)
	}
	return paint(coreColor, coreSym)
}

// RenderFeedback fades a field or echo glyph by age in [0,1].
func (t *DefaultTheme) RenderFeedback(kind game.FeedbackKind, age float64) string {
	c := fieldColor
	sym := fieldSyms
	if kind == game.Echo {
		c = echoColor
		sym = echoSyms
	}
	i := int(age * float64(len(sym)))
	if i >= len(sym) {
		i = len(sym) - 1
	}
	if i < 0 {
		i = 0
	}
	return paint(fade(c, age), sym[i])
}

func (t *DefaultTheme) Label(name string) string {
	return paint(labelColor, name)
}

// RenderPattern dims outer rings. In flow each ring shifts towards blue.
func (t *DefaultTheme) RenderPattern(flow bool, ring, rings int) string {
	c := patternColor
	if flow {
		c = Color{uint8(max(0, 60-ring*5)), uint8(min(255, 150+ring*8)), 255}
	}
	return paint(fade(c, float64(ring)/float64(rings)), patternSym)
}

func (t *DefaultTheme) RenderNode(flow bool) string {
	if flow {
		return paint(flowColor, nodeSym)
	}
	return paint(nodeColor, nodeSym)
}

func fade(c Color, age float64) Color {
	k := 1 - age
	if k < 0.2 {
		k = 0.2
	}
	if k > 1 {
		k = 1
	}
	return Color{uint8(float64(c.R) * k), uint8(float64(c.G) * k), uint8(float64(c.B) * k)}
}

const (
	tetherSym  = "·"
	coreSym    = "◉"
	patternSym = "˙"
	nodeSym    = "∘"
)

var (
	pulseSyms = map[game.Phase]string{
		game.Approaching: "●",
		game.Critical:    "◆",
		game.Passed:      "○",
	}
	phaseColors = map[game.Phase]Color{
		game.Approaching: {26, 214, 255}, // cyan
		game.Critical:    {235, 71, 209}, // magenta
		game.Passed:      {71, 77, 133},  // muted
	}
	fieldSyms  = [...]string{"✺", "✹", "✧", "·"}
	echoSyms   = [...]string{"≈", "~", "-", "·"}
	coreColor  = Color{26, 214, 255}
	flowColor  = Color{186, 110, 255}
	fieldColor = Color{140, 120, 255}
	echoColor  = Color{224, 56, 80}
	labelColor = Color{150, 160, 190}

	patternColor = Color{170, 90, 230}
	nodeColor    = Color{220, 100, 200}
)
