package registry

import (
	"sync"

	"github.com/vovakirdan/underground/internal/core"
)

// Handle is a stable reference to an object in an Arena.
// A handle goes stale once its object is removed; the slot may be reused
// by a later insert with a new generation.
type Handle struct {
	index uint32
	gen   uint32
}

// Valid reports whether the handle was ever issued.
func (h Handle) Valid() bool {
	return h.gen != 0
}

type slot struct {
	obj  Object
	gen  uint32 // Odd while live, even while free
	live bool
}

// Arena stores objects contiguously behind a reader/writer lock.
// Callbacks passed to WithRead and WithWrite run while the lock is held and
// must not block on I/O or on other loops.
type Arena struct {
	mu    sync.RWMutex
	slots []slot
	free  []uint32
	count int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Insert adds an object and returns its handle.
func (a *Arena) Insert(obj Object) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.insertLocked(obj)
}

func (a *Arena) insertLocked(obj Object) Handle {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.gen++
		s.obj = obj
		s.live = true
		return Handle{index: idx, gen: s.gen}
	}
	a.slots = append(a.slots, slot{obj: obj, gen: 1, live: true})
	return Handle{index: uint32(len(a.slots) - 1), gen: 1} //nolint:gosec // slot count fits in uint32
}

// Remove deletes the object referenced by h. Returns false for stale handles.
func (a *Arena) Remove(h Handle) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.removeLocked(h)
}

func (a *Arena) removeLocked(h Handle) bool {
	if !a.liveLocked(h) {
		return false
	}
	s := &a.slots[h.index]
	s.obj = Object{}
	s.live = false
	s.gen++
	a.free = append(a.free, h.index)
	a.count--
	return true
}

func (a *Arena) liveLocked(h Handle) bool {
	if int(h.index) >= len(a.slots) {
		return false
	}
	s := a.slots[h.index]
	return s.live && s.gen == h.gen
}

// Get returns a copy of the object referenced by h.
func (a *Arena) Get(h Handle) (Object, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.liveLocked(h) {
		return Object{}, false
	}
	return a.slots[h.index].obj, true
}

// Len returns the number of live objects.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.count
}

// Replace discards every object and stores objs instead.
// Handles issued before the call become stale.
func (a *Arena) Replace(objs []Object) []Handle {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Retire every slot first so generations keep growing per index.
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			s.live = false
			s.gen++
		}
		s.obj = Object{}
	}
	a.free = a.free[:0]
	for i := len(a.slots) - 1; i >= 0; i-- {
		a.free = append(a.free, uint32(i)) //nolint:gosec // slot count fits in uint32
	}
	a.count = 0

	handles := make([]Handle, len(objs))
	for i, obj := range objs {
		handles[i] = a.insertLocked(obj)
	}
	return handles
}

// ObjectView is read-only access to an arena during WithRead.
type ObjectView struct {
	a *Arena
}

// Len returns the number of live objects.
func (v ObjectView) Len() int {
	return v.a.count
}

// Each calls fn for every live object in slot order.
func (v ObjectView) Each(fn func(Handle, Object)) {
	for i, s := range v.a.slots {
		if s.live {
			fn(Handle{index: uint32(i), gen: s.gen}, s.obj) //nolint:gosec // slot count fits in uint32
		}
	}
}

// ObjectEditor is read-write access to an arena during WithWrite.
type ObjectEditor struct {
	ObjectView
}

// Insert adds an object.
func (e *ObjectEditor) Insert(obj Object) Handle {
	return e.a.insertLocked(obj)
}

// Remove deletes an object.
func (e *ObjectEditor) Remove(h Handle) bool {
	return e.a.removeLocked(h)
}

// Update calls fn with a pointer to every live object.
// fn must not insert into the arena.
func (e *ObjectEditor) Update(fn func(Handle, *Object)) {
	for i := range e.a.slots {
		s := &e.a.slots[i]
		if s.live {
			fn(Handle{index: uint32(i), gen: s.gen}, &s.obj) //nolint:gosec // slot count fits in uint32
		}
	}
}

// WithRead runs fn while holding the read lock.
func (a *Arena) WithRead(fn func(ObjectView)) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	fn(ObjectView{a: a})
}

// WithWrite runs fn while holding the write lock.
func (a *Arena) WithWrite(fn func(*ObjectEditor)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&ObjectEditor{ObjectView{a: a}})
}

// AppendPrimitives appends the vertices of every live object to dst.
// halfExtent must be positive on both axes.
func (a *Arena) AppendPrimitives(dst []core.Primitive, camera, halfExtent core.Vec2) []core.Primitive {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if need := len(dst) + a.count*core.VerticesPerQuad; cap(dst) < need {
		grown := make([]core.Primitive, len(dst), need)
		copy(grown, dst)
		dst = grown
	}
	for i := range a.slots {
		if a.slots[i].live {
			dst = a.slots[i].obj.AppendPrimitives(dst, camera, halfExtent)
		}
	}
	return dst
}

// AdvanceAnimation advances every live object by dt seconds.
func (a *Arena) AdvanceAnimation(dt float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.slots {
		if a.slots[i].live {
			a.slots[i].obj.AdvanceAnimation(dt)
		}
	}
}
