package render

import (
	"context"
	"time"

	"git.lost.host/meutraa/anticipate/internal/engine"
	"git.lost.host/meutraa/anticipate/internal/game"
)

type Renderer interface {
	Init() error
	Deinit() error
	Resize()
	RenderLoop(ctx context.Context, period time.Duration, render func(now time.Time) bool)
	Emit(f game.Feedback)
	Draw(now time.Time, s engine.State)
	Fill(row, column int, message string)
}
