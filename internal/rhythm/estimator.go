// Package rhythm tracks the player's own tempo from the gaps between actions.
package rhythm

import (
	"math"
	"time"
)

const (
	Capacity   = 10
	Window     = 5
	MinSamples = 3

	// Weight of the player's average in Predict, the rest goes to the base.
	Weight = 0.7
)

type Estimator struct {
	Base time.Duration

	samples []time.Duration // newest last
	last    time.Time
}

func NewEstimator(base time.Duration) *Estimator {
	return &Estimator{
		Base:    base,
		samples: make([]time.Duration, 0, Capacity),
	}
}

// Observe notes an action at t. The first action only sets the baseline.
func (e *Estimator) Observe(t time.Time) {
	if !e.last.IsZero() {
		e.Record(t.Sub(e.last))
	}
	e.last = t
}

// Record appends a raw interval, dropping the oldest beyond Capacity.
func (e *Estimator) Record(d time.Duration) {
	if len(e.samples) == Capacity {
		copy(e.samples, e.samples[1:])
		e.samples = e.samples[:Capacity-1]
	}
	e.samples = append(e.samples, d)
}

func (e *Estimator) Len() int {
	return len(e.samples)
}

func (e *Estimator) Samples() []time.Duration {
	out := make([]time.Duration, len(e.samples))
	copy(out, e.samples)
	return out
}

// Average is the mean of the last Window samples, or Base with too few.
func (e *Estimator) Average() time.Duration {
	if len(e.samples) < MinSamples {
		return e.Base
	}
	recent := e.samples
	if len(recent) > Window {
		recent = recent[len(recent)-Window:]
	}
	var sum time.Duration
	for _, d := range recent {
		sum += d
	}
	return sum / time.Duration(len(recent))
}

// Predict blends the player's average with Base.
func (e *Estimator) Predict() time.Duration {
	if len(e.samples) < MinSamples {
		return e.Base
	}
	return time.Duration(math.Round(Weight*float64(e.Average()) + (1-Weight)*float64(e.Base)))
}

// Reset forgets all samples and the baseline action.
func (e *Estimator) Reset() {
	e.samples = e.samples[:0]
	e.last = time.Time{}
}
