package theme

import (
	"git.lost.host/meutraa/anticipate/internal/game"
)

type Theme interface {
	RenderPulse(phase game.Phase) string
	RenderTether() string
	RenderCore(flow bool) string
	RenderFeedback(kind game.FeedbackKind, age float64) string
	Label(name string) string

	// RenderPattern paints background ring ring of rings.
	RenderPattern(flow bool, ring, rings int) string
	RenderNode(flow bool) string
}
