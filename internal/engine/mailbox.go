package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/underground/internal/core"
)

// FrameBatch is one complete set of primitives for the presenter.
type FrameBatch struct {
	Seq        uint64
	Camera     core.Vec2 // Camera used to build the primitives
	HalfExtent core.Vec2
	Primitives []core.Primitive
	ProducedAt time.Time
}

// Mailbox hands frames to the presenter keeping at most one pending batch.
// A batch the presenter has not picked up yet is replaced by the next one,
// so a slow presenter always sees the newest frame.
type Mailbox struct {
	mu        sync.Mutex // Serializes publishers
	ch        chan FrameBatch
	dropped   atomic.Uint64
	published atomic.Uint64
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan FrameBatch, 1)}
}

// Publish stores batch, discarding a stale pending batch. Never blocks.
func (m *Mailbox) Publish(batch FrameBatch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.published.Add(1)
	select {
	case m.ch <- batch:
		return
	default:
	}

	// Pending batch is stale, drop it
	select {
	case <-m.ch:
		m.dropped.Add(1)
	default:
	}
	select {
	case m.ch <- batch:
	default:
		m.dropped.Add(1)
	}
}

// C returns the channel for select-based consumers.
func (m *Mailbox) C() <-chan FrameBatch {
	return m.ch
}

// TryReceive returns the pending batch without blocking.
func (m *Mailbox) TryReceive() (FrameBatch, bool) {
	select {
	case b := <-m.ch:
		return b, true
	default:
		return FrameBatch{}, false
	}
}

// Dropped returns how many batches were discarded unseen.
func (m *Mailbox) Dropped() uint64 {
	return m.dropped.Load()
}

// Published returns how many batches were published.
func (m *Mailbox) Published() uint64 {
	return m.published.Load()
}
