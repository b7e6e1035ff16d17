package voice

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultStartTimeout bounds how long Start waits for arecord's first chunk.
const DefaultStartTimeout = time.Second

// ArecordCapture reads raw S16_LE mono audio from the ALSA arecord tool.
type ArecordCapture struct {
	cfg    CaptureConfig
	logger *slog.Logger

	// StartTimeout is how long Start waits for audio before giving up.
	StartTimeout time.Duration

	mu      sync.Mutex
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	stream  chan Chunk
	done    chan struct{}
	stderr  *stderrBuffer
	running bool
	lost    bool
	err     error
}

func NewArecordCapture(cfg CaptureConfig, logger *slog.Logger) (*ArecordCapture, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid capture config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ArecordCapture{cfg: cfg, logger: logger, StartTimeout: DefaultStartTimeout}, nil
}

func (a *ArecordCapture) Name() string {
	return "arecord"
}

func (a *ArecordCapture) Stream() <-chan Chunk {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stream
}

// Err reports why the stream closed without a Stop, once Stop has reaped
// the process.
func (a *ArecordCapture) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Start launches arecord and waits for its first chunk. An arecord that
// exits or stays silent first is reported as ErrUnavailable.
func (a *ArecordCapture) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return nil
	}

	path, err := exec.LookPath("arecord")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, path,
		"-q",
		"-D", a.cfg.Device,
		"-t", "raw",
		"-f", "S16_LE",
		"-c", "1",
		"-r", strconv.Itoa(a.cfg.SampleRate),
	)
	stderr := &stderrBuffer{}
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	stream := make(chan Chunk, 10)
	done := make(chan struct{})
	ready := make(chan error, 1)
	go a.readLoop(ctx, stdout, stream, done, ready)

	timeout := a.StartTimeout
	if timeout <= 0 {
		timeout = DefaultStartTimeout
	}
	var startErr error
	select {
	case startErr = <-ready:
	case <-time.After(timeout):
		startErr = fmt.Errorf("no audio within %v", timeout)
	case <-ctx.Done():
		startErr = ctx.Err()
	}
	if startErr != nil {
		cancel()
		<-done
		waitErr := cmd.Wait()
		err := failure(stderr, waitErr, startErr)
		a.logger.Warn("voice capture failed to start",
			"backend", a.Name(),
			"device", a.cfg.Device,
			"error", err,
		)
		return err
	}

	a.cmd = cmd
	a.cancel = cancel
	a.stream = stream
	a.done = done
	a.stderr = stderr
	a.running = true
	a.lost = false
	a.err = nil

	a.logger.Info("voice capture started",
		"backend", a.Name(),
		"device", a.cfg.Device,
		"sample_rate", a.cfg.SampleRate,
	)
	return nil
}

// readLoop sends nil on ready after the first chunk, or the read error if
// arecord ends before producing one.
func (a *ArecordCapture) readLoop(ctx context.Context, r io.Reader, stream chan<- Chunk, done chan<- struct{}, ready chan<- error) {
	defer close(done)
	defer close(stream)

	buf := make([]byte, a.cfg.BufferSize()*2)
	first := true
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			if first {
				ready <- err
				return
			}
			if ctx.Err() == nil {
				a.mu.Lock()
				a.lost = true
				a.mu.Unlock()
				a.logger.Warn("voice capture ended unexpectedly", "backend", a.Name(), "error", err)
			}
			return
		}
		chunk := make(Chunk, len(buf)/2)
		for i := range chunk {
			chunk[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
		}
		select {
		case stream <- chunk:
		default:
			a.logger.Debug("voice capture: buffer full, dropping chunk")
		}
		if first {
			first = false
			ready <- nil
		}
	}
}

func (a *ArecordCapture) Stop() error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	a.running = false
	cmd, cancel, done, stderr := a.cmd, a.cancel, a.done, a.stderr
	a.mu.Unlock()

	cancel()
	<-done
	// arecord exits on the kill from the cancelled context
	waitErr := cmd.Wait()

	a.mu.Lock()
	if a.lost {
		a.err = failure(stderr, waitErr, io.ErrUnexpectedEOF)
	}
	a.mu.Unlock()

	a.logger.Info("voice capture stopped", "backend", a.Name())
	return nil
}

// failure builds an ErrUnavailable from what arecord printed, falling back
// to its exit status and then to cause.
func failure(stderr *stderrBuffer, waitErr, cause error) error {
	msg := stderr.String()
	if msg == "" {
		var exit *exec.ExitError
		if errors.As(waitErr, &exit) {
			msg = exit.Error()
		} else if cause != nil {
			msg = cause.Error()
		} else {
			msg = "arecord exited"
		}
	}
	return fmt.Errorf("%w: %s", ErrUnavailable, msg)
}

// stderrBuffer keeps the first few lines arecord writes to stderr. exec
// copies into it from its own goroutine.
type stderrBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

const stderrLimit = 1024

func (b *stderrBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if room := stderrLimit - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *stderrBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.TrimSpace(b.buf.String())
}
