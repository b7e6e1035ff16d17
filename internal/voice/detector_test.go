package voice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tone(amplitude float64, n int) Chunk {
	c := make(Chunk, n)
	for i := range c {
		c[i] = int16(amplitude * 32767 * math.Sin(2*math.Pi*float64(i)/32))
	}
	return c
}

func TestLevel(t *testing.T) {
	if l := Level(nil); l != 0 {
		t.Fatalf("expected silence for no samples, got %v", l)
	}
	if l := Level(tone(0, 320)); l != 0 {
		t.Fatalf("expected silence, got %v", l)
	}
	// the RMS of a sine is amplitude/sqrt(2)
	if l := Level(tone(0.5, 320)); math.Abs(l-0.5/math.Sqrt2) > 0.01 {
		t.Fatalf("unexpected sine level %v", l)
	}
}

func TestProcessCooldown(t *testing.T) {
	d := NewDetector(DefaultConfig(), NewMockCapture(), quiet())
	fired := []time.Time{}
	d.OnTrigger = func(at time.Time) { fired = append(fired, at) }

	t0 := time.Unix(0, 0)
	loud, soft := tone(0.8, 320), tone(0.01, 320)
	steps := []struct {
		ms    int
		chunk Chunk
		fire  bool
	}{
		{0, soft, false},
		{20, loud, true},
		{400, loud, false},
		{820, loud, false},
		{821, loud, true},
		{2000, soft, false},
	}
	for _, s := range steps {
		if got := d.Process(s.chunk, t0.Add(time.Duration(s.ms)*time.Millisecond)); got != s.fire {
			t.Fatalf("t=%dms: expected fire=%v, got %v", s.ms, s.fire, got)
		}
	}
	if len(fired) != 2 {
		t.Fatalf("expected 2 triggers, got %d", len(fired))
	}
}

func TestDetectorLifecycle(t *testing.T) {
	capture := NewMockCapture()
	d := NewDetector(DefaultConfig(), capture, quiet())

	var mu sync.Mutex
	triggers := 0
	got := make(chan struct{}, 1)
	d.OnTrigger = func(time.Time) {
		mu.Lock()
		triggers++
		mu.Unlock()
		got <- struct{}{}
	}

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("unable to start: %v", err)
	}
	if !capture.Running() || !d.Listening() {
		t.Fatal("capture not acquired")
	}

	capture.Feed(tone(0.9, 320))
	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("no trigger for a loud chunk")
	}

	if err := d.Stop(); err != nil {
		t.Fatalf("unable to stop: %v", err)
	}
	if capture.Running() || capture.Stops != 1 {
		t.Fatal("capture not released on stop")
	}
	if err := d.Stop(); err != nil || capture.Stops != 1 {
		t.Fatal("second stop should be a no-op")
	}
	mu.Lock()
	defer mu.Unlock()
	if triggers != 1 {
		t.Fatalf("expected 1 trigger, got %d", triggers)
	}
}

func TestDetectorUnavailable(t *testing.T) {
	denied := errors.New("permission denied")
	capture := NewMockCapture().Failing(denied)
	d := NewDetector(DefaultConfig(), capture, quiet())

	err := d.Start(context.Background())
	if !errors.Is(err, ErrUnavailable) || !errors.Is(err, denied) {
		t.Fatalf("expected ErrUnavailable wrapping the cause, got %v", err)
	}
	if d.Listening() {
		t.Fatal("detector listening after a failed start")
	}
	if err := d.Stop(); err != nil {
		t.Fatalf("stop after failed start: %v", err)
	}
}

func TestDetectorLost(t *testing.T) {
	capture := NewMockCapture()
	d := NewDetector(DefaultConfig(), capture, quiet())
	lost := make(chan error, 1)
	d.OnLost = func(err error) { lost <- err }

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("unable to start: %v", err)
	}
	unplugged := errors.New("device unplugged")
	capture.Lose(unplugged)

	select {
	case err := <-lost:
		if !errors.Is(err, ErrUnavailable) || !errors.Is(err, unplugged) {
			t.Fatalf("expected ErrUnavailable wrapping the cause, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loss not reported")
	}
	if d.Listening() {
		t.Fatal("detector still listening")
	}
	if err := d.Stop(); err != nil {
		t.Fatalf("stop after loss: %v", err)
	}
}

func TestCaptureConfig(t *testing.T) {
	cfg := DefaultCaptureConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if n := cfg.BufferSize(); n != 320 {
		t.Fatalf("expected 320 samples per 20ms at 16kHz, got %d", n)
	}
	cfg.SampleRate = 0
	if cfg.Validate() == nil {
		t.Fatal("expected zero sample rate to be rejected")
	}
}
