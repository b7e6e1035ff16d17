package score

import (
	"time"

	"git.lost.host/meutraa/anticipate/internal/game"
)

type Scorer interface {
	// Judge resolves one anticipation at now against the advanced track,
	// mutating the session and removing a hit pulse.
	Judge(now time.Time, track *game.Track, session *game.Session) Result

	// Closest is the critical pulse nearest to now, if any.
	Closest(now time.Time, track *game.Track) *game.Pulse
}

type Result struct {
	Hit      bool
	Pulse    *game.Pulse   // the pulse considered, nil when none was critical
	Until    time.Duration // targetTime - now of Pulse
	Accuracy float64
	Points   int
	Feedback game.Feedback
	Flow     game.FlowChange
}
