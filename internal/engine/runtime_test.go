package engine

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/underground/internal/config"
	"github.com/vovakirdan/underground/internal/core"
	"github.com/vovakirdan/underground/internal/input"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Loops.FrameRate = 200
	cfg.Loops.SimRate = 200

	rt, err := New(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return rt
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRuntimeEndToEnd(t *testing.T) {
	rt := newTestRuntime(t)
	rt.Start(context.Background())

	// Seeded world: five tiles and one debug object.
	waitFor(t, "world construction", func() bool { return rt.Registry().Len() == 6 })

	rt.Input().Send(input.Press("d"))
	waitFor(t, "camera movement", func() bool {
		camera, _ := rt.World().ReadCameraAndViewport()
		return camera.X > 0
	})
	rt.Input().Send(input.Release("d"))
	waitFor(t, "key release", func() bool { return rt.World().Snapshot().AxisX == core.AxisNone })

	var batch FrameBatch
	waitFor(t, "frame batch", func() bool {
		var ok bool
		batch, ok = rt.Frames().TryReceive()
		return ok
	})
	if len(batch.Primitives) != 6*core.VerticesPerQuad {
		t.Errorf("batch has %d primitives, expected %d", len(batch.Primitives), 6*core.VerticesPerQuad)
	}

	if err := rt.Shutdown(); err != nil {
		t.Errorf("Shutdown() = %v, expected nil", err)
	}
	select {
	case <-rt.Done():
	default:
		t.Error("Done() not closed after Shutdown()")
	}
	if rt.Running() {
		t.Error("Running() = true after Shutdown()")
	}

	stats := rt.Stats()
	if stats.Input.Dispatched != 2 {
		t.Errorf("Dispatched = %d, expected 2", stats.Input.Dispatched)
	}
	if stats.Producer.Frames == 0 {
		t.Error("no frames produced")
	}
}

func TestRuntimeUnexpectedDisconnect(t *testing.T) {
	rt := newTestRuntime(t)
	rt.Start(context.Background())

	rt.Input().Close()

	select {
	case <-rt.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after the queue disconnected")
	}
	if err := rt.Shutdown(); !errors.Is(err, input.ErrUnexpectedDisconnect) {
		t.Errorf("Shutdown() = %v, expected %v", err, input.ErrUnexpectedDisconnect)
	}
}

func TestRuntimeParentCancel(t *testing.T) {
	rt := newTestRuntime(t)
	ctx, cancel := context.WithCancel(context.Background())
	rt.Start(ctx)
	cancel()

	select {
	case <-rt.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after parent cancellation")
	}
	if err := rt.Shutdown(); err != nil {
		t.Errorf("Shutdown() = %v, expected nil", err)
	}
}

func TestRuntimeShutdownWithoutStart(t *testing.T) {
	rt := newTestRuntime(t)
	if err := rt.Shutdown(); err != nil {
		t.Errorf("Shutdown() = %v, expected nil", err)
	}
	if rt.Input().Send(input.Press("w")) {
		t.Error("queue should be closed after Shutdown()")
	}
}

func TestNewRejectsBadBindings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bindings = []input.BindingSpec{{Source: "nope", Press: "place"}}
	if _, err := New(cfg, nil); err == nil {
		t.Error("New() with invalid bindings should fail")
	}
}
