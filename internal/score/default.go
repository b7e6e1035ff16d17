package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/anticipate/internal/game"
)

type DefaultScorer struct {
	Window time.Duration
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

func (s *DefaultScorer) Closest(now time.Time, track *game.Track) *game.Pulse {
	var closest *game.Pulse
	best := time.Duration(math.MaxInt64)
	for _, p := range track.Active() {
		if p.Phase != game.Critical {
			continue
		}
		// strict so the earliest created pulse wins a tie
		if d := abs(p.Until(now)); d < best {
			best = d
			closest = p
		}
	}
	return closest
}

// Accuracy follows the anticipation law: 1 at the window edge, 0 at arrival.
func (s *DefaultScorer) Accuracy(until time.Duration) float64 {
	return 1 - float64(until)/float64(s.Window)
}

func (s *DefaultScorer) Judge(now time.Time, track *game.Track, session *game.Session) Result {
	var r Result
	r.Pulse = s.Closest(now, track)
	if r.Pulse != nil {
		r.Until = r.Pulse.Until(now)
	}

	// only strictly before arrival counts, the post-arrival tail never scores
	if r.Pulse != nil && r.Until > 0 && r.Until < s.Window {
		r.Hit = true
		r.Accuracy = s.Accuracy(r.Until)
		r.Points = int(math.Round(r.Accuracy * 100))
		session.Hit(r.Points)
		track.Remove(r.Pulse)
		r.Feedback = game.Feedback{
			Kind:      game.Field,
			Timestamp: now,
			Radius:    float64(50 + r.Points),
			Intensity: r.Accuracy,
		}
	} else {
		session.Miss()
		r.Feedback = game.Feedback{
			Kind:      game.Echo,
			Timestamp: now,
			Radius:    game.EchoRadius,
			Intensity: game.EchoIntensity,
		}
	}

	r.Flow = session.UpdateFlow()
	return r
}
