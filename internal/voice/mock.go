package voice

import (
	"context"
	"fmt"
	"sync"
)

// MockCapture replays chunks pushed with Feed. It never touches a device.
type MockCapture struct {
	mu      sync.Mutex
	stream  chan Chunk
	running bool
	fail    error
	err     error

	Starts, Stops int
}

func NewMockCapture() *MockCapture {
	return &MockCapture{}
}

// Failing makes the next Start return err wrapped in ErrUnavailable.
func (m *MockCapture) Failing(err error) *MockCapture {
	m.fail = err
	return m
}

func (m *MockCapture) Name() string {
	return "mock"
}

func (m *MockCapture) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, m.fail)
	}
	if m.running {
		return nil
	}
	m.Starts++
	m.running = true
	m.err = nil
	m.stream = make(chan Chunk, 64)
	return nil
}

func (m *MockCapture) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return nil
	}
	m.Stops++
	m.running = false
	close(m.stream)
	return nil
}

func (m *MockCapture) Stream() <-chan Chunk {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stream
}

// Feed queues a chunk, reporting false if the capture is not running.
func (m *MockCapture) Feed(c Chunk) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return false
	}
	m.stream <- c
	return true
}

func (m *MockCapture) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Lose closes the stream as if the device went away, leaving err for Err.
func (m *MockCapture) Lose(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.running = false
	m.err = fmt.Errorf("%w: %w", ErrUnavailable, err)
	close(m.stream)
}

func (m *MockCapture) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
