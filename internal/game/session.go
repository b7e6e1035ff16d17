package game

import (
	"math"
)

const (
	SyncGain      = 0.1
	SyncLoss      = 0.02
	FieldGain     = 5.0
	FieldMax      = 100.0
	FlowEnterHits = 10
	FlowEnterSync = 0.7
	FlowExitHits  = 5
)

// Session is the mutable aggregate of a play session. Every field is written
// through exactly one transition method.
type Session struct {
	score           int
	syncRate        float64
	predictiveField float64
	consecutiveHits int
	flow            bool
	playing         bool
}

func (s *Session) Score() int               { return s.score }
func (s *Session) SyncRate() float64        { return s.syncRate }
func (s *Session) PredictiveField() float64 { return s.predictiveField }
func (s *Session) ConsecutiveHits() int     { return s.consecutiveHits }
func (s *Session) Flow() bool               { return s.flow }
func (s *Session) Playing() bool            { return s.playing }

// Hit applies a successful anticipation worth points.
func (s *Session) Hit(points int) {
	if points > 0 {
		s.score += points
	}
	s.syncRate = math.Min(1, s.syncRate+SyncGain)
	s.predictiveField = math.Min(FieldMax, s.predictiveField+FieldGain)
	s.consecutiveHits++
}

// Miss applies a failed anticipation.
func (s *Session) Miss() {
	s.syncRate = math.Max(0, s.syncRate-SyncLoss)
	s.consecutiveHits = 0
}

type FlowChange int8

const (
	FlowSteady FlowChange = iota
	FlowEntered
	FlowExited
)

// UpdateFlow evaluates the flow transition after a judgement.
func (s *Session) UpdateFlow() FlowChange {
	switch {
	case !s.flow && s.consecutiveHits >= FlowEnterHits && s.syncRate > FlowEnterSync:
		s.flow = true
		return FlowEntered
	case s.flow && s.consecutiveHits < FlowExitHits:
		s.flow = false
		return FlowExited
	}
	return FlowSteady
}

// Begin resets the session and marks it as playing.
func (s *Session) Begin() {
	*s = Session{playing: true}
}

func (s *Session) End() {
	s.playing = false
}

// Snapshot is a read-only copy of the session for renderers.
type Snapshot struct {
	Score           int     `json:"score"`
	SyncRate        float64 `json:"sync_rate"`
	PredictiveField float64 `json:"predictive_field"`
	ConsecutiveHits int     `json:"consecutive_hits"`
	Flow            bool    `json:"flow"`
	Playing         bool    `json:"playing"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Score:           s.score,
		SyncRate:        s.syncRate,
		PredictiveField: s.predictiveField,
		ConsecutiveHits: s.consecutiveHits,
		Flow:            s.flow,
		Playing:         s.playing,
	}
}
