package world

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrPoisoned is raised by every accessor once a writer panicked while holding
// the state lock. The state may be torn, so no worker may keep running on it.
var ErrPoisoned = errors.New("world: state poisoned by a panic in a write section")

// guard is a reader/writer lock that remembers panics raised by writers.
type guard struct {
	mu       sync.RWMutex
	poisoned atomic.Bool
}

// read runs fn under the read lock.
func (g *guard) read(fn func()) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.check()
	fn()
}

// write runs fn under the write lock. A panic inside fn poisons the guard
// before the lock is released and keeps propagating.
func (g *guard) write(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.check()
	defer func() {
		if r := recover(); r != nil {
			g.poisoned.Store(true)
			panic(r)
		}
	}()
	fn()
}

func (g *guard) check() {
	if g.poisoned.Load() {
		panic(ErrPoisoned)
	}
}
