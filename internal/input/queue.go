package input

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned by Recv once the queue is closed and drained.
var ErrQueueClosed = errors.New("input: queue closed")

// Queue is an unbounded multi-producer single-consumer event queue.
// Send never blocks, so presenters can push from their own event loop.
type Queue struct {
	mu     sync.Mutex
	events []Event
	head   int
	closed bool
	notify chan struct{} // Capacity 1; signalled when events arrive or on close
}

// NewQueue creates an empty open queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Send appends an event. Returns false if the queue is closed.
func (q *Queue) Send(ev Event) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.events = append(q.events, ev)
	q.mu.Unlock()

	q.signal()
	return true
}

// Close stops accepting events. Pending events can still be received.
// Safe to call multiple times.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events) - q.head
}

// Recv blocks until an event is available, the queue is closed and drained,
// or ctx is done.
func (q *Queue) Recv(ctx context.Context) (Event, error) {
	for {
		ev, ok, closed := q.pop()
		if ok {
			return ev, nil
		}
		if closed {
			return nil, ErrQueueClosed
		}
		select {
		case <-q.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// TryRecv returns the next event without blocking.
func (q *Queue) TryRecv() (Event, bool) {
	ev, ok, _ := q.pop()
	return ev, ok
}

func (q *Queue) pop() (ev Event, ok, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head < len(q.events) {
		ev = q.events[q.head]
		q.events[q.head] = nil
		q.head++
		if q.head == len(q.events) {
			q.events = q.events[:0]
			q.head = 0
		}
		return ev, true, false
	}
	return nil, false, q.closed
}

func (q *Queue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
