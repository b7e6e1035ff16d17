package game

import (
	"time"
)

type Phase uint8

const (
	Approaching Phase = iota
	Critical
	Passed
)

func (p Phase) String() string {
	switch p {
	case Approaching:
		return "approaching"
	case Critical:
		return "critical"
	case Passed:
		return "passed"
	}
	return "unknown"
}

// Windows holds the lifecycle thresholds, all measured as targetTime - now.
type Windows struct {
	Anticipation time.Duration // critical starts at or below this
	CriticalTail time.Duration // critical ends at or below -CriticalTail
	Grace        time.Duration // removed at or below -Grace
}

func DefaultWindows() Windows {
	return Windows{
		Anticipation: 500 * time.Millisecond,
		CriticalTail: 200 * time.Millisecond,
		Grace:        500 * time.Millisecond,
	}
}

// PhaseAt is the phase of a pulse whose target is delta away.
func (w Windows) PhaseAt(delta time.Duration) Phase {
	switch {
	case delta > w.Anticipation:
		return Approaching
	case delta > -w.CriticalTail:
		return Critical
	}
	return Passed
}

// Expired reports whether a pulse delta away should leave the active set.
func (w Windows) Expired(delta time.Duration) bool {
	return delta <= -w.Grace
}

type Pulse struct {
	ID     uint64
	Spawn  time.Time // When the pulse was created
	Target time.Time // When the pulse arrives at the centre
	Radius float64
	Phase  Phase
}

// Until is the time remaining before the pulse arrives, negative once it has.
func (p *Pulse) Until(now time.Time) time.Duration {
	return p.Target.Sub(now)
}

// Progress is how far along its flight the pulse is, 0 at spawn, 1 at arrival.
func (p *Pulse) Progress(now time.Time) float64 {
	flight := p.Target.Sub(p.Spawn)
	if flight <= 0 {
		return 1
	}
	return 1 - float64(p.Until(now))/float64(flight)
}
