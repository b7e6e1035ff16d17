// Package engine steps one anticipation session. Everything happens inside
// Tick, on the caller's goroutine; inputs from other goroutines only reach the
// session through the input queue.
package engine

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.lost.host/meutraa/anticipate/internal/game"
	"git.lost.host/meutraa/anticipate/internal/input"
	"git.lost.host/meutraa/anticipate/internal/rhythm"
	"git.lost.host/meutraa/anticipate/internal/schedule"
	"git.lost.host/meutraa/anticipate/internal/score"
	"git.lost.host/meutraa/anticipate/internal/sound"
)

type Config struct {
	Windows      game.Windows
	Flight       time.Duration
	BaseInterval time.Duration
	MinInterval  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Windows:      game.DefaultWindows(),
		Flight:       3000 * time.Millisecond,
		BaseInterval: 3000 * time.Millisecond,
		MinInterval:  300 * time.Millisecond,
	}
}

// Sink receives feedback events. The renderer owns their lifetime.
type Sink interface {
	Emit(f game.Feedback)
}

// Recorder persists judgements for the running process.
type Recorder interface {
	Record(e score.Entry) error
}

type Engine struct {
	cfg       Config
	logger    *slog.Logger
	queue     *input.Queue
	track     *game.Track
	session   *game.Session
	rhythm    *rhythm.Estimator
	scheduler *schedule.Scheduler
	scorer    score.Scorer

	Sound    sound.Bank
	Sink     Sink
	Recorder Recorder

	id      string
	started time.Time
}

func New(cfg Config, queue *input.Queue, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		cfg:     cfg,
		logger:  logger,
		queue:   queue,
		track:   game.NewTrack(cfg.Windows),
		session: &game.Session{},
		rhythm:  rhythm.NewEstimator(cfg.BaseInterval),
		scorer:  &score.DefaultScorer{Window: cfg.Windows.Anticipation},
		Sound:   sound.Null{},
	}
	e.scheduler = schedule.New(cfg.Flight, cfg.MinInterval, e.rhythm, e.track, e.session)
	return e
}

// Start begins a fresh session at now.
func (e *Engine) Start(now time.Time) {
	e.session.Begin()
	e.track.Clear()
	e.rhythm.Reset()
	e.scheduler.Reset()
	e.id = uuid.NewString()
	e.started = now
	e.logger.Info("session started", "session", e.id)
	e.Sound.OnAmbient(e.session.SyncRate())
}

// Stop ends the session. Later ticks neither spawn nor judge.
func (e *Engine) Stop() {
	if !e.session.Playing() {
		return
	}
	e.session.End()
	e.logger.Info("session stopped",
		"session", e.id,
		"score", e.session.Score(),
		"sync_rate", e.session.SyncRate(),
	)
}

// Tick advances the session to now: phases first, then spawning, then every
// queued anticipation in arrival order. While idle, any anticipation starts a
// session instead of being judged.
func (e *Engine) Tick(now time.Time) []score.Result {
	events := e.queue.Drain()
	if !e.session.Playing() {
		if len(events) > 0 {
			e.Start(now)
		}
		return nil
	}

	e.track.Advance(now)
	if p := e.scheduler.Tick(now); p != nil {
		e.logger.Debug("pulse spawned",
			"session", e.id,
			"pulse", p.ID,
			"interval_ms", e.scheduler.Interval().Milliseconds(),
		)
	}

	var results []score.Result
	for _, ev := range events {
		results = append(results, e.anticipate(now, ev))
	}
	return results
}

func (e *Engine) anticipate(now time.Time, ev input.Event) score.Result {
	at := ev.At
	if at.IsZero() {
		at = now
	}
	e.rhythm.Observe(at)
	e.Sound.OnAnticipationRipple()

	r := e.scorer.Judge(now, e.track, e.session)
	if e.Sink != nil {
		e.Sink.Emit(r.Feedback)
	}
	if r.Hit {
		e.Sound.OnHit(r.Accuracy)
	} else {
		e.Sound.OnMiss()
	}
	e.Sound.OnAmbient(e.session.SyncRate())

	switch r.Flow {
	case game.FlowEntered:
		e.logger.Info("flow entered", "session", e.id, "streak", e.session.ConsecutiveHits())
		e.Sound.OnFlowEnter()
	case game.FlowExited:
		e.logger.Info("flow lost", "session", e.id)
	}

	e.logger.Debug("anticipation judged",
		"session", e.id,
		"source", ev.Source,
		"hit", r.Hit,
		"until_ms", r.Until.Milliseconds(),
		"points", r.Points,
	)

	if e.Recorder != nil {
		err := e.Recorder.Record(score.Entry{
			Session:  e.id,
			At:       now.Sub(e.started),
			Source:   ev.Source.String(),
			Hit:      r.Hit,
			Accuracy: r.Accuracy,
			Points:   r.Points,
			Streak:   e.session.ConsecutiveHits(),
		})
		if err != nil {
			e.logger.Warn("unable to journal judgement", "error", err)
		}
	}
	return r
}

func (e *Engine) SessionID() string {
	return e.id
}

func (e *Engine) Session() game.Snapshot {
	return e.session.Snapshot()
}

func (e *Engine) Playing() bool {
	return e.session.Playing()
}

// Pulses exposes the live pulses read-only.
func (e *Engine) Pulses() []*game.Pulse {
	return e.track.Active()
}

func (e *Engine) Interval() time.Duration {
	return e.scheduler.Interval()
}
