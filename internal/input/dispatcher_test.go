package input

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/underground/internal/core"
	"github.com/vovakirdan/underground/internal/registry"
	"github.com/vovakirdan/underground/internal/world"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *world.State, *registry.Registry) {
	t.Helper()
	opts := world.DefaultOptions()
	opts.WindowSize = core.Size{W: 800, H: 600}
	w := world.New(opts)
	if err := w.SetViewportPreset(core.Vec2{X: 1, Y: 1}); err != nil {
		t.Fatalf("SetViewportPreset() failed: %v", err)
	}
	reg := registry.New()
	d := NewDispatcher(DefaultTable(), w, reg, DefaultSpawn(), log.New(io.Discard))
	return d, w, reg
}

func TestDispatchPanKeys(t *testing.T) {
	d, w, _ := newTestDispatcher(t)

	d.Dispatch(Press("w"))
	if got := w.Snapshot().AxisY; got != core.AxisNegative {
		t.Fatalf("after press(w) AxisY = %v, expected %v", got, core.AxisNegative)
	}

	d.Dispatch(Press("s"))
	if got := w.Snapshot().AxisY; got != core.AxisBoth {
		t.Errorf("after press(s) AxisY = %v, expected %v", got, core.AxisBoth)
	}

	d.Dispatch(Release("w"))
	if got := w.Snapshot().AxisY; got != core.AxisPositive {
		t.Errorf("after release(w) AxisY = %v, expected %v", got, core.AxisPositive)
	}

	d.Dispatch(Press("d"))
	if got := w.Snapshot().AxisX; got != core.AxisPositive {
		t.Errorf("after press(d) AxisX = %v, expected %v", got, core.AxisPositive)
	}
}

func TestDispatchDropsRedundantTransitions(t *testing.T) {
	d, w, _ := newTestDispatcher(t)

	d.Dispatch(Release("a")) // Release while idle
	d.Dispatch(Press("a"))
	d.Dispatch(Press("a")) // Key repeat

	stats := d.Stats()
	if stats.Dropped != 2 {
		t.Errorf("Dropped = %d, expected 2", stats.Dropped)
	}
	if stats.Dispatched != 1 {
		t.Errorf("Dispatched = %d, expected 1", stats.Dispatched)
	}

	d.Dispatch(Release("a"))
	if got := w.Snapshot().AxisX; got != core.AxisNone {
		t.Errorf("after release AxisX = %v, expected %v", got, core.AxisNone)
	}
}

func TestDispatchUnknownInputs(t *testing.T) {
	d, w, _ := newTestDispatcher(t)
	before := w.Snapshot()

	d.Dispatch(Press("f12"))
	d.Dispatch(PointerButton{Button: ButtonOther(2), Pressed: true})
	d.Dispatch(WindowResize{Width: 0, Height: 600})

	if got := d.Stats().Dropped; got != 3 {
		t.Errorf("Dropped = %d, expected 3", got)
	}
	if after := w.Snapshot(); after != before {
		t.Errorf("state changed on dropped input: %+v -> %+v", before, after)
	}
}

func TestDispatchPlaceObject(t *testing.T) {
	d, _, reg := newTestDispatcher(t)

	d.Dispatch(PointerMove{X: 800, Y: 600})
	d.Dispatch(PointerButton{Button: ButtonLeft, Pressed: true})
	d.Dispatch(PointerButton{Button: ButtonLeft, Pressed: false})

	if reg.Dynamic.Len() != 1 {
		t.Fatalf("Dynamic.Len() = %d, expected 1", reg.Dynamic.Len())
	}
	reg.WithDynamicRead(func(v registry.ObjectView) {
		v.Each(func(_ registry.Handle, o registry.Object) {
			if o.Position != (core.Vec2{X: 1, Y: 1}) {
				t.Errorf("placed at %+v, expected (1, 1)", o.Position)
			}
			if o.Kind != registry.KindDebug || o.Texture != 0 {
				t.Errorf("unexpected object %+v", o)
			}
		})
	})
}

func TestDispatchZoomPresets(t *testing.T) {
	d, w, _ := newTestDispatcher(t)
	regular := w.RegularHalfExtent()
	d.Dispatch(PointerMove{X: 800, Y: 300})

	tests := []struct {
		key    KeyCode
		factor float64
	}{
		{"2", 2},
		{"3", 0.5},
		{"space", 1},
		{"1", 1},
	}

	for _, tt := range tests {
		d.Dispatch(Press(tt.key))
		d.Dispatch(Release(tt.key))

		snap := w.Snapshot()
		expected := regular.Scale(tt.factor)
		if snap.HalfExtent != expected {
			t.Errorf("after %q HalfExtent = %+v, expected %+v", tt.key, snap.HalfExtent, expected)
		}
		if snap.CursorWorld.X != expected.X {
			t.Errorf("after %q cursor world X = %v, expected %v", tt.key, snap.CursorWorld.X, expected.X)
		}
		if snap.Camera != (core.Vec2{}) {
			t.Errorf("zoom preset moved the camera to %+v", snap.Camera)
		}
	}
}

func TestDispatchPlaceObjectZoomed(t *testing.T) {
	d, w, reg := newTestDispatcher(t)
	regular := w.RegularHalfExtent()

	d.Dispatch(Press("2"))
	d.Dispatch(PointerMove{X: 800, Y: 300})
	d.Dispatch(PointerButton{Button: ButtonLeft, Pressed: true})

	// The placement follows the zoomed cursor projection.
	expected := core.Vec2{X: 2 * regular.X, Y: 0}
	reg.WithDynamicRead(func(v registry.ObjectView) {
		if v.Len() != 1 {
			t.Errorf("Len() = %d, expected 1", v.Len())
			return
		}
		v.Each(func(_ registry.Handle, o registry.Object) {
			if o.Position != expected {
				t.Errorf("placed at %+v, expected %+v", o.Position, expected)
			}
		})
	})
}

func TestDispatchZoomPresetClamped(t *testing.T) {
	table, err := TableFromConfig([]BindingSpec{
		{Source: "space", Press: "zoom:1e9"},
		{Source: "mouse_left", Press: "place"},
	})
	if err != nil {
		t.Fatalf("TableFromConfig() failed: %v", err)
	}
	_, w, reg := newTestDispatcher(t)
	d := NewDispatcher(table, w, reg, DefaultSpawn(), nil)

	d.Dispatch(PointerMove{X: 800, Y: 300})
	d.Dispatch(Press("space"))

	snap := w.Snapshot()
	if snap.HalfExtent != (core.Vec2{X: 1000, Y: 1000}) {
		t.Errorf("HalfExtent = %+v, expected the max limit", snap.HalfExtent)
	}
	if snap.CursorWorld != (core.Vec2{X: 1000, Y: 0}) {
		t.Errorf("CursorWorld = %+v, expected (1000, 0)", snap.CursorWorld)
	}

	d.Dispatch(PointerButton{Button: ButtonLeft, Pressed: true})
	reg.WithDynamicRead(func(v registry.ObjectView) {
		v.Each(func(_ registry.Handle, o registry.Object) {
			if !o.Position.Finite() {
				t.Errorf("placed object at %+v, expected a finite position", o.Position)
			}
		})
	})
}

func TestDispatchScrollMatchesSimulatedScroll(t *testing.T) {
	wheel, ww, _ := newTestDispatcher(t)
	keys, wk, _ := newTestDispatcher(t)

	wheel.Dispatch(PointerMove{X: 600, Y: 150})
	keys.Dispatch(PointerMove{X: 600, Y: 150})

	wheel.Dispatch(Scroll{Delta: 1})
	keys.Dispatch(Press("j"))
	keys.Dispatch(Release("j"))

	if ww.Snapshot() != wk.Snapshot() {
		t.Errorf("wheel %+v != simulated %+v", ww.Snapshot(), wk.Snapshot())
	}
	if got := ww.Snapshot().HalfExtent; got != (core.Vec2{X: 0.9, Y: 0.9}) {
		t.Errorf("HalfExtent = %+v, expected (0.9, 0.9)", got)
	}

	keys.Dispatch(Press("l"))
	if got := wk.Snapshot().HalfExtent; got.X <= 0.9 {
		t.Errorf("scroll out should grow the extent, got %+v", got)
	}
}

func TestDispatchResize(t *testing.T) {
	d, w, _ := newTestDispatcher(t)

	d.Dispatch(WindowResize{Width: 1024, Height: 768})
	d.Dispatch(PointerMove{X: 512, Y: 384})

	snap := w.Snapshot()
	if snap.WindowSize != (core.Size{W: 1024, H: 768}) {
		t.Errorf("WindowSize = %+v, expected 1024x768", snap.WindowSize)
	}
	if snap.CursorRelative != (core.Vec2f{}) {
		t.Errorf("CursorRelative = %+v, expected (0, 0)", snap.CursorRelative)
	}
}

func TestRunGracefulShutdown(t *testing.T) {
	d, w, _ := newTestDispatcher(t)
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx, q) }()

	q.Send(Press("w"))
	deadline := time.Now().Add(time.Second)
	for w.Snapshot().AxisY != core.AxisNegative {
		if time.Now().After(deadline) {
			t.Fatal("event was not dispatched")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	q.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, expected nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestRunUnexpectedDisconnect(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	q := NewQueue()
	q.Send(Press("w"))
	q.Close()

	err := d.Run(context.Background(), q)
	if !errors.Is(err, ErrUnexpectedDisconnect) {
		t.Errorf("Run() = %v, expected %v", err, ErrUnexpectedDisconnect)
	}
	if got := d.Stats().Dispatched; got != 1 {
		t.Errorf("pending events should be drained before disconnect, dispatched %d", got)
	}
}
