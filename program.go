package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eiannone/keyboard"

	"git.lost.host/meutraa/anticipate/internal/config"
	"git.lost.host/meutraa/anticipate/internal/engine"
	"git.lost.host/meutraa/anticipate/internal/input"
	"git.lost.host/meutraa/anticipate/internal/remote"
	"git.lost.host/meutraa/anticipate/internal/render"
	"git.lost.host/meutraa/anticipate/internal/score"
	"git.lost.host/meutraa/anticipate/internal/sound"
	"git.lost.host/meutraa/anticipate/internal/voice"
)

const (
	noticeDuration    = 4 * time.Second
	judgementDuration = 1500 * time.Millisecond
	resizeFrames      = 60
	perfectAccuracy   = 0.8
)

type Program struct {
	Config   *config.Config
	Logger   *slog.Logger
	Renderer render.Renderer

	Queue    *input.Queue
	Engine   *engine.Engine
	Journal  *score.Journal
	Detector *voice.Detector
	Remote   *remote.Server

	voiceLost    chan error
	frameCounter uint64
	notice       string
	noticeUntil  time.Time
	sessions     []string
}

func (p *Program) Init(ctx context.Context) error {
	p.Queue = input.NewQueue()
	p.Engine = engine.New(p.Config.Engine(), p.Queue, p.Logger)
	p.Engine.Sink = p.Renderer

	journal, err := score.OpenJournal()
	if err != nil {
		return err
	}
	p.Journal = journal
	p.Engine.Recorder = journal

	if p.Config.Mute {
		p.Engine.Sound = sound.Null{}
	} else if bank, err := sound.NewBeepBank(p.Logger); err != nil {
		p.Logger.Warn("sound unavailable, playing silently", "error", err)
	} else {
		p.Engine.Sound = bank
	}

	if p.Config.Voice {
		p.startVoice(ctx)
	}

	if p.Config.Listen != "" {
		p.Remote = remote.NewServer(p.Queue, p.Logger)
		p.Remote.ListenAsync(p.Config.Listen)
	}

	return p.Renderer.Init()
}

func (p *Program) startVoice(ctx context.Context) {
	capture, err := voice.NewArecordCapture(p.Config.Capture, p.Logger)
	if err == nil {
		err = p.listen(ctx, capture)
	}
	if err != nil {
		p.Logger.Warn("voice input disabled", "error", err)
		msg := "Microphone unavailable, use the keyboard"
		if !errors.Is(err, voice.ErrUnavailable) {
			msg = "Voice input disabled"
		}
		p.notify(msg, time.Now(), noticeDuration)
	}
}

// listen starts a detector over capture that queues Voice anticipations.
// A capture lost later is reported to Update through voiceLost.
func (p *Program) listen(ctx context.Context, capture voice.Capture) error {
	d := voice.NewDetector(p.Config.Trigger, capture, p.Logger)
	d.OnTrigger = func(at time.Time) {
		p.Queue.Push(input.Event{Source: input.Voice, At: at})
	}
	lost := make(chan error, 1)
	d.OnLost = func(err error) {
		select {
		case lost <- err:
		default:
		}
	}
	if err := d.Start(ctx); err != nil {
		return err
	}
	p.Detector, p.voiceLost = d, lost
	return nil
}

func (p *Program) notify(msg string, now time.Time, d time.Duration) {
	p.notice = msg
	p.noticeUntil = now.Add(d)
}

func judgementNotice(r score.Result) string {
	switch {
	case !r.Hit:
		return "Recalibrating... Feel the rhythm"
	case r.Accuracy > perfectAccuracy:
		return fmt.Sprintf("Perfect Anticipation! +%d points", r.Points)
	default:
		return fmt.Sprintf("Anticipated +%d points", r.Points)
	}
}

// Update drains the keys pressed since the last frame and steps the engine.
// It reports false once the player quits.
func (p *Program) Update(now time.Time, keys <-chan keyboard.KeyEvent) bool {
	for i := len(keys); i > 0; i-- {
		key := <-keys
		if key.Err != nil {
			p.Logger.Warn("keyboard error", "error", key.Err)
			continue
		}
		switch cmd, source := input.FromKey(key); cmd {
		case input.Quit:
			return false
		case input.Anticipate:
			p.Queue.Push(input.Event{Source: source, At: now})
		}
	}

	select {
	case err := <-p.voiceLost:
		p.Detector = nil
		p.Logger.Warn("voice input lost", "error", err)
		p.notify("Microphone lost, use the keyboard", now, noticeDuration)
	default:
	}

	wasPlaying := p.Engine.Playing()
	results := p.Engine.Tick(now)
	if !wasPlaying && p.Engine.Playing() {
		p.sessions = append(p.sessions, p.Engine.SessionID())
		p.notify("Synchronization beginning... anticipate before the pulse arrives", now, noticeDuration)
	}
	if n := len(results); n > 0 {
		p.notify(judgementNotice(results[n-1]), now, judgementDuration)
	}
	return true
}

func (p *Program) Render(now time.Time) {
	p.frameCounter++
	if p.frameCounter%resizeFrames == 0 {
		p.Renderer.Resize()
	}

	state := p.Engine.State(now)
	p.Renderer.Draw(now, state)
	if p.notice != "" && now.Before(p.noticeUntil) {
		p.Renderer.Fill(1, 3, p.notice)
	}
	if p.Remote != nil {
		p.Remote.Publish(state)
	}
}

// Deinit releases every device and returns the session summary to print.
func (p *Program) Deinit() string {
	p.Engine.Stop()
	if p.Detector != nil {
		if err := p.Detector.Stop(); err != nil {
			p.Logger.Warn("unable to stop voice capture", "error", err)
		}
	}
	if p.Remote != nil {
		if err := p.Remote.Shutdown(); err != nil {
			p.Logger.Warn("unable to stop remote server", "error", err)
		}
	}
	if err := p.Renderer.Deinit(); err != nil {
		p.Logger.Warn("unable to restore terminal", "error", err)
	}

	summary := ""
	for _, id := range p.sessions {
		s, err := p.Journal.Summary(id)
		if err != nil {
			p.Logger.Warn("unable to summarise session", "session", id, "error", err)
			continue
		}
		summary += fmt.Sprintf("Resonance %5d  hits %4d  misses %4d  accuracy %5.1f%%  best streak %3d\n",
			s.Points, s.Hits, s.Misses, s.MeanAccuracy*100, s.BestStreak)
	}
	p.Journal.Close()
	return summary
}
