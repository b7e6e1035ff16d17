package game

import (
	"time"
)

// Track owns the in-flight pulses in creation order.
type Track struct {
	Windows Windows

	pulses []*Pulse
	nextID uint64
}

func NewTrack(w Windows) *Track {
	return &Track{Windows: w}
}

// Add creates a pulse and inserts it in the approaching phase of now.
func (t *Track) Add(now, target time.Time, radius float64) *Pulse {
	t.nextID++
	p := &Pulse{
		ID:     t.nextID,
		Spawn:  now,
		Target: target,
		Radius: radius,
	}
	p.Phase = t.Windows.PhaseAt(p.Until(now))
	t.pulses = append(t.pulses, p)
	return p
}

// Advance recomputes every phase for now and drops expired pulses.
// It must run before any judgement in the same frame.
func (t *Track) Advance(now time.Time) {
	kept := t.pulses[:0]
	for _, p := range t.pulses {
		d := p.Until(now)
		if t.Windows.Expired(d) {
			continue
		}
		p.Phase = t.Windows.PhaseAt(d)
		kept = append(kept, p)
	}
	for i := len(kept); i < len(t.pulses); i++ {
		t.pulses[i] = nil
	}
	t.pulses = kept
}

// Active returns the live pulses. Callers must not modify the slice.
func (t *Track) Active() []*Pulse {
	return t.pulses
}

func (t *Track) Len() int {
	return len(t.pulses)
}

// Remove takes a pulse out of the active set, reporting whether it was there.
func (t *Track) Remove(p *Pulse) bool {
	for i, q := range t.pulses {
		if q == p {
			copy(t.pulses[i:], t.pulses[i+1:])
			t.pulses[len(t.pulses)-1] = nil
			t.pulses = t.pulses[:len(t.pulses)-1]
			return true
		}
	}
	return false
}

func (t *Track) Clear() {
	t.pulses = nil
}
