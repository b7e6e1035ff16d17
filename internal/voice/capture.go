// Package voice turns microphone loudness spikes into anticipation triggers.
package voice

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable wraps any failure to acquire the capture device.
var ErrUnavailable = errors.New("voice capture unavailable")

// Chunk is a block of mono PCM16 samples.
type Chunk []int16

// Capture produces microphone audio between Start and Stop.
type Capture interface {
	// Start acquires the device. Chunks arrive on Stream until Stop.
	Start(ctx context.Context) error

	// Stop releases the device and closes the stream.
	// It is safe to call Stop multiple times.
	Stop() error

	Stream() <-chan Chunk
	Name() string

	// Err is the reason the stream closed on its own, or nil.
	Err() error
}

type CaptureConfig struct {
	Device         string        `yaml:"device"`
	SampleRate     int           `yaml:"sample_rate"`
	BufferDuration time.Duration `yaml:"buffer_duration"`
}

func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		Device:         "default",
		SampleRate:     16000,
		BufferDuration: 20 * time.Millisecond,
	}
}

func (c *CaptureConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.BufferDuration <= 0 {
		return fmt.Errorf("buffer_duration must be positive, got %v", c.BufferDuration)
	}
	return nil
}

// BufferSize is the number of samples per chunk.
func (c *CaptureConfig) BufferSize() int {
	return int(float64(c.SampleRate) * c.BufferDuration.Seconds())
}
