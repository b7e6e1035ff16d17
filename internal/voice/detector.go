package voice

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"
)

type Config struct {
	Threshold float64       `yaml:"threshold"` // RMS level in [0,1]
	Cooldown  time.Duration `yaml:"cooldown"`
}

func DefaultConfig() Config {
	return Config{
		Threshold: 0.12,
		Cooldown:  800 * time.Millisecond,
	}
}

// Level is the RMS of a chunk normalised to [0,1].
func Level(c Chunk) float64 {
	if len(c) == 0 {
		return 0
	}
	var sum float64
	for _, s := range c {
		v := float64(s) / 32768.0
		sum += v * v
	}
	return math.Min(1, math.Sqrt(sum/float64(len(c))))
}

// Detector fires OnTrigger at most once per cooldown while the level is
// above threshold. OnTrigger runs on the detector's goroutine and must only
// enqueue.
type Detector struct {
	cfg       Config
	capture   Capture
	logger    *slog.Logger
	now       func() time.Time
	OnTrigger func(at time.Time)
	// OnLost runs once if the capture stream closes without a Stop.
	OnLost func(err error)

	mu          sync.Mutex
	lastTrigger time.Time
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	listening   bool
}

func NewDetector(cfg Config, capture Capture, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		cfg:     cfg,
		capture: capture,
		logger:  logger,
		now:     time.Now,
	}
}

// Process judges a single chunk captured at now, reporting a trigger.
func (d *Detector) Process(c Chunk, now time.Time) bool {
	level := Level(c)
	d.mu.Lock()
	fire := level > d.cfg.Threshold &&
		(d.lastTrigger.IsZero() || now.Sub(d.lastTrigger) > d.cfg.Cooldown)
	if fire {
		d.lastTrigger = now
	}
	d.mu.Unlock()

	if fire && d.OnTrigger != nil {
		d.OnTrigger(now)
	}
	return fire
}

// Start acquires the capture and begins listening. A failure wraps
// ErrUnavailable and leaves the detector stopped.
func (d *Detector) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listening {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	if err := d.capture.Start(ctx); err != nil {
		cancel()
		return err
	}
	d.cancel = cancel
	d.listening = true
	d.lastTrigger = time.Time{}

	stream := d.capture.Stream()
	d.wg.Add(1)
	go d.listen(ctx, stream)

	d.logger.Info("voice detector listening",
		"capture", d.capture.Name(),
		"threshold", d.cfg.Threshold,
		"cooldown_ms", d.cfg.Cooldown.Milliseconds(),
	)
	return nil
}

func (d *Detector) listen(ctx context.Context, stream <-chan Chunk) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-stream:
			if !ok {
				d.lose()
				return
			}
			d.Process(c, d.now())
		}
	}
}

func (d *Detector) lose() {
	d.mu.Lock()
	if !d.listening {
		d.mu.Unlock()
		return
	}
	d.listening = false
	cancel := d.cancel
	d.mu.Unlock()

	cancel()
	d.capture.Stop()
	err := d.capture.Err()
	if err == nil {
		err = fmt.Errorf("%w: %s stream closed", ErrUnavailable, d.capture.Name())
	}
	d.logger.Warn("voice detector lost its capture", "capture", d.capture.Name(), "error", err)
	if d.OnLost != nil {
		d.OnLost(err)
	}
}

// Stop ends listening and releases the capture before returning.
func (d *Detector) Stop() error {
	d.mu.Lock()
	if !d.listening {
		d.mu.Unlock()
		return nil
	}
	d.listening = false
	cancel := d.cancel
	d.mu.Unlock()

	cancel()
	err := d.capture.Stop()
	d.wg.Wait()
	d.logger.Info("voice detector stopped")
	return err
}

func (d *Detector) Listening() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listening
}
