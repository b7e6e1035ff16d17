// Package schedule decides when new pulses are launched.
package schedule

import (
	"time"

	"git.lost.host/meutraa/anticipate/internal/game"
	"git.lost.host/meutraa/anticipate/internal/rhythm"
)

const (
	FlowCompression = 0.8
	SyncSpeedup     = 500 * time.Millisecond
	PulseRadius     = 15
)

type Scheduler struct {
	Flight      time.Duration // Spawn to arrival
	MinInterval time.Duration // Floor for the adaptive spawn gap

	rhythm  *rhythm.Estimator
	track   *game.Track
	session *game.Session
	last    time.Time
}

func New(flight, minInterval time.Duration, r *rhythm.Estimator, t *game.Track, s *game.Session) *Scheduler {
	return &Scheduler{
		Flight:      flight,
		MinInterval: minInterval,
		rhythm:      r,
		track:       t,
		session:     s,
	}
}

// Interval is the current spawn gap.
func (s *Scheduler) Interval() time.Duration {
	interval := s.rhythm.Predict()
	if s.session.Flow() {
		interval = time.Duration(float64(interval) * FlowCompression)
	}
	interval -= time.Duration(s.session.SyncRate() * float64(SyncSpeedup))
	if interval < s.MinInterval {
		interval = s.MinInterval
	}
	return interval
}

// Tick launches a pulse when the spawn gap has elapsed, returning it.
func (s *Scheduler) Tick(now time.Time) *game.Pulse {
	if !s.session.Playing() {
		return nil
	}
	if !s.last.IsZero() && now.Sub(s.last) <= s.Interval() {
		return nil
	}
	s.last = now
	return s.track.Add(now, now.Add(s.Flight), PulseRadius)
}

// Last is when the previous pulse was launched.
func (s *Scheduler) Last() time.Time {
	return s.last
}

// Reset makes the next Tick spawn immediately.
func (s *Scheduler) Reset() {
	s.last = time.Time{}
}
