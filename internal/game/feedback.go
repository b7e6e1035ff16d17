package game

import (
	"time"
)

type FeedbackKind uint8

const (
	// Field is the bloom left by a hit.
	Field FeedbackKind = iota
	// Echo is the distortion left by a miss.
	Echo
)

const (
	FieldLifetime = 2000 * time.Millisecond
	EchoLifetime  = 3000 * time.Millisecond
	EchoRadius    = 60
	EchoIntensity = 0.4
)

type Feedback struct {
	Kind      FeedbackKind
	Timestamp time.Time
	Radius    float64
	Intensity float64
}

func (f *Feedback) Lifetime() time.Duration {
	if f.Kind == Echo {
		return EchoLifetime
	}
	return FieldLifetime
}

// Age is the fraction of the lifetime elapsed at now, above 1 once expired.
func (f *Feedback) Age(now time.Time) float64 {
	return float64(now.Sub(f.Timestamp)) / float64(f.Lifetime())
}

func (f *Feedback) Expired(now time.Time) bool {
	return now.Sub(f.Timestamp) > f.Lifetime()
}
