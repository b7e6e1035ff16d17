package input

import (
	"sync"
	"time"
)

// Queue buffers events from any goroutine until the frame loop drains them.
type Queue struct {
	mu     sync.Mutex
	events []Event
	now    func() time.Time
}

func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Trigger enqueues an event from source stamped with the current time.
func (q *Queue) Trigger(source Source) {
	q.Push(Event{Source: source, At: q.now()})
}

// Drain returns the pending events in arrival order and empties the queue.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
