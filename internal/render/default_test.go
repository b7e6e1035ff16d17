package render

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/anticipate/internal/engine"
	"git.lost.host/meutraa/anticipate/internal/game"
	"git.lost.host/meutraa/anticipate/internal/theme"
)

func newRenderer() (*DefaultRenderer, *bytes.Buffer) {
	var out bytes.Buffer
	r := NewDefaultRenderer(&theme.DefaultTheme{})
	r.Out = &out
	r.SetSize(80, 24)
	return r, &out
}

func TestDrawFrame(t *testing.T) {
	r, out := newRenderer()
	now := time.Unix(0, 0)
	r.Draw(now, engine.State{
		Stats: game.Snapshot{Score: 120, SyncRate: 0.4, PredictiveField: 15, Playing: true},
		Pulses: []engine.PulseView{
			{ID: 1, Phase: "approaching", Progress: 0.2},
			{ID: 2, Phase: "critical", Progress: 0.9},
		},
	})
	r.flush()

	frame := out.String()
	for _, want := range []string{"RESONANCE", "120", " 40%", "●", "◆"} {
		if !strings.Contains(frame, want) {
			t.Fatalf("frame is missing %q", want)
		}
	}
	if strings.Contains(frame, "Press space") {
		t.Fatal("start prompt shown while playing")
	}
}

func TestFeedbackExpires(t *testing.T) {
	r, out := newRenderer()
	now := time.Unix(0, 0)
	r.Emit(game.Feedback{Kind: game.Field, Timestamp: now, Radius: 70, Intensity: 0.2})
	r.Emit(game.Feedback{Kind: game.Echo, Timestamp: now, Radius: game.EchoRadius, Intensity: game.EchoIntensity})

	r.Draw(now.Add(time.Second), engine.State{})
	if len(r.feedback) != 2 {
		t.Fatalf("expected both effects alive, got %d", len(r.feedback))
	}
	r.Draw(now.Add(2500*time.Millisecond), engine.State{})
	if len(r.feedback) != 1 || r.feedback[0].Kind != game.Echo {
		t.Fatalf("expected only the echo after 2.5s, got %+v", r.feedback)
	}
	r.Draw(now.Add(3100*time.Millisecond), engine.State{})
	if len(r.feedback) != 0 {
		t.Fatal("echo outlived its lifetime")
	}
	r.flush()
	if !strings.Contains(out.String(), "Press space") {
		t.Fatal("expected the start prompt while idle")
	}
}

func TestFillClips(t *testing.T) {
	r, _ := newRenderer()
	r.Fill(-1, 0, "x")
	r.Fill(0, 80, "x")
	r.Fill(24, 0, "x")
	if r.buffer.Len() != 0 {
		t.Fatalf("off screen cells were written: %q", r.buffer.String())
	}
	r.Fill(0, 0, "x")
	if r.buffer.String() != "\033[1;1Hx" {
		t.Fatalf("unexpected escape %q", r.buffer.String())
	}
}

func TestPatternNodesFollowSync(t *testing.T) {
	for _, tt := range []struct {
		sync  float64
		nodes bool
	}{{0.2, false}, {0.6, true}} {
		r, out := newRenderer()
		r.Draw(time.Unix(0, 0), engine.State{Stats: game.Snapshot{SyncRate: tt.sync, Playing: true}})
		r.flush()
		frame := out.String()
		if !strings.Contains(frame, "˙") {
			t.Fatalf("sync %v: no background pattern", tt.sync)
		}
		if strings.Contains(frame, "∘") != tt.nodes {
			t.Fatalf("sync %v: expected nodes=%v", tt.sync, tt.nodes)
		}
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestFlushLogsOnce(t *testing.T) {
	var logs bytes.Buffer
	r, _ := newRenderer()
	r.Out = brokenWriter{}
	r.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	for i := 0; i < 3; i++ {
		r.Fill(0, 0, "x")
		r.flush()
	}
	if n := strings.Count(logs.String(), "unable to write frame"); n != 1 {
		t.Fatalf("expected one logged failure, got %d: %s", n, logs.String())
	}
	if r.buffer.Len() != 0 {
		t.Fatal("frame kept after a failed write")
	}
}
