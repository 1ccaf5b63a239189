package input

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/underground/internal/core"
	"github.com/vovakirdan/underground/internal/registry"
	"github.com/vovakirdan/underground/internal/world"
)

// ErrUnexpectedDisconnect is returned by Run when the queue closes while the
// application is still running.
var ErrUnexpectedDisconnect = errors.New("input: event queue disconnected while running")

// Spawn describes the object created by a place action.
type Spawn struct {
	Texture   uint32
	Extent    float32
	Frames    []uint32 // Optional animation frames
	FrameTime float64
}

// DefaultSpawn returns a static debug object using texture 0.
func DefaultSpawn() Spawn {
	return Spawn{Texture: 0, Extent: 0.2}
}

// Stats counts events seen by a Dispatcher.
type Stats struct {
	Dispatched uint64
	Dropped    uint64
}

// Dispatcher routes events to the world state and registry.
// Dispatch must only be called from one goroutine.
type Dispatcher struct {
	table    *Table
	world    *world.State
	registry *registry.Registry
	spawn    Spawn
	logger   *log.Logger

	// Idle (false) or Active (true) per source.
	active [NumSources]bool

	dispatched atomic.Uint64
	dropped    atomic.Uint64
}

// NewDispatcher creates a dispatcher. A nil logger discards output.
func NewDispatcher(table *Table, w *world.State, reg *registry.Registry, spawn Spawn, logger *log.Logger) *Dispatcher {
	if table == nil {
		table = DefaultTable()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		table:    table,
		world:    w,
		registry: reg,
		spawn:    spawn,
		logger:   logger,
	}
}

// Stats returns event counters. Safe to call from any goroutine.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Dispatched: d.dispatched.Load(),
		Dropped:    d.dropped.Load(),
	}
}

// Run drains the queue until ctx is cancelled or the queue closes.
// Closing the queue after ctx is done is a graceful shutdown; closing it
// while ctx is live returns ErrUnexpectedDisconnect.
func (d *Dispatcher) Run(ctx context.Context, q *Queue) error {
	for {
		ev, err := q.Recv(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) && ctx.Err() == nil {
				d.logger.Error("event queue closed unexpectedly")
				return ErrUnexpectedDisconnect
			}
			d.logger.Info("input loop stopped", "dispatched", d.dispatched.Load(), "dropped", d.dropped.Load())
			return nil
		}
		d.Dispatch(ev)
	}
}

// Dispatch handles one event.
func (d *Dispatcher) Dispatch(ev Event) {
	switch e := ev.(type) {
	case PointerMove:
		d.world.ApplyCursorMove(e.X, e.Y)
	case PointerButton:
		src, ok := SourceForButton(e.Button)
		if !ok {
			d.drop("unbound mouse button", "button", e.Button)
			return
		}
		if !d.fire(src, e.Pressed) {
			return
		}
	case Scroll:
		d.scroll(e.Delta)
	case WindowResize:
		if err := d.world.Resize(core.Size{W: e.Width, H: e.Height}); err != nil {
			d.drop("ignoring resize", "width", e.Width, "height", e.Height, "error", err)
			return
		}
	case Key:
		src, ok := SourceForKey(e.Code)
		if !ok {
			d.drop("unknown key", "key", e.Code)
			return
		}
		if !d.fire(src, e.Pressed) {
			return
		}
	default:
		d.drop("unknown event", "event", ev)
		return
	}
	d.dispatched.Add(1)
}

// fire runs the source state machine and the bound action.
// Returns false if the transition was dropped.
func (d *Dispatcher) fire(src Source, pressed bool) bool {
	if pressed == d.active[src] {
		// Key repeat while held, or a release without a press.
		d.drop("redundant transition", "source", src, "pressed", pressed)
		return false
	}
	d.active[src] = pressed

	b, ok := d.table.Lookup(src)
	if !ok {
		return true
	}
	if pressed {
		d.apply(b.Press, true)
	} else {
		d.apply(b.Release, false)
	}
	return true
}

// apply is the single interpreter of bound actions.
func (d *Dispatcher) apply(a Action, pressed bool) {
	switch a.Kind {
	case ActionNone:
	case ActionCameraPan:
		state := d.world.SetAxisState(a.Axis, core.AxisEvent{Pressed: pressed, Sign: a.Sign})
		d.logger.Debug("axis", "axis", a.Axis, "state", state)
	case ActionZoomPreset:
		half := d.world.RegularHalfExtent().Scale(a.Factor)
		if err := d.world.SetViewportPreset(half); err != nil {
			d.logger.Warn("zoom preset rejected", "factor", a.Factor, "error", err)
			return
		}
		d.world.RecomputeCursorWorld()
	case ActionPlaceObject:
		d.placeObject()
	case ActionSimulateScroll:
		d.scroll(float32(a.Sign))
	}
}

func (d *Dispatcher) scroll(delta float32) {
	if !d.world.ApplyZoomDelta(delta) {
		d.logger.Debug("zoom rejected", "delta", delta)
		return
	}
	d.world.RecomputeCursorWorld()
}

// placeObject inserts a debug object at the cursor's world position.
// The cursor projection scales by the viewport half extent but quads are only
// offset by the camera, so the object lands under the pointer only while the
// half extent is (1, 1).
func (d *Dispatcher) placeObject() {
	pos := d.world.Snapshot().CursorWorld
	obj := registry.NewDebugObject(pos, d.spawn.Texture, d.spawn.Extent)
	if len(d.spawn.Frames) > 0 {
		obj.Anim = registry.Animation{Frames: append([]uint32(nil), d.spawn.Frames...), FrameTime: d.spawn.FrameTime}
	}
	h := d.registry.Dynamic.Insert(obj)
	d.logger.Debug("placed object", "x", pos.X, "y", pos.Y, "handle", h)
}

func (d *Dispatcher) drop(msg string, keyvals ...any) {
	d.dropped.Add(1)
	d.logger.Debug(msg, keyvals...)
}
