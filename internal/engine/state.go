package engine

import (
	"time"

	"git.lost.host/meutraa/anticipate/internal/game"
)

type PulseView struct {
	ID       uint64  `json:"id"`
	Phase    string  `json:"phase"`
	Progress float64 `json:"progress"`
	UntilMs  int64   `json:"until_ms"`
	Radius   float64 `json:"radius"`
}

// State is a copy of everything a renderer may show, safe to hand to
// another goroutine.
type State struct {
	Session    string        `json:"session"`
	At         time.Time     `json:"at"`
	IntervalMs int64         `json:"interval_ms"`
	Stats      game.Snapshot `json:"stats"`
	Pulses     []PulseView   `json:"pulses"`
}

func (e *Engine) State(now time.Time) State {
	s := State{
		Session:    e.id,
		At:         now,
		IntervalMs: e.scheduler.Interval().Milliseconds(),
		Stats:      e.session.Snapshot(),
		Pulses:     make([]PulseView, 0, e.track.Len()),
	}
	for _, p := range e.track.Active() {
		s.Pulses = append(s.Pulses, PulseView{
			ID:       p.ID,
			Phase:    p.Phase.String(),
			Progress: p.Progress(now),
			UntilMs:  p.Until(now).Milliseconds(),
			Radius:   p.Radius,
		})
	}
	return s
}
