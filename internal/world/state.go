// Package world holds the shared world state read by every loop and written
// mostly by the input dispatcher and the frame producer.
//
// All fields live behind one reader/writer lock. Each accessor is a single
// short critical section; there is no atomicity across accessors, so a reader
// may see a camera position and a cursor position from different instants.
// Derived values (the cursor world position) are always computed from one
// snapshot taken under a single lock acquisition.
package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/underground/internal/core"
)

var (
	// ErrInvalidExtent is returned when a viewport half extent is not positive.
	ErrInvalidExtent = errors.New("world: viewport half extent must be positive")

	// ErrInvalidSize is returned when a window size has a zero dimension.
	ErrInvalidSize = errors.New("world: window size must be non-zero")
)

// Options configures a new State.
type Options struct {
	WindowSize     core.Size // Initial physical window size
	AspectW        float64   // Aspect ratio numerator (e.g. 16)
	AspectH        float64   // Aspect ratio denominator (e.g. 9)
	HalfHeight     float64   // Regular viewport half height in world units
	MovementSpeed  float32   // Camera speed in viewport half extents per second
	ZoomStep       float64   // Relative half extent change per scroll unit
	MinHalfExtent  float64   // Lower zoom clamp (0 disables)
	MaxHalfExtent  float64   // Upper zoom clamp (0 disables)
	CameraPosition core.Vec2 // Initial camera focus point
}

// DefaultOptions returns a 16:9 world with a 1280x720 window.
func DefaultOptions() Options {
	return Options{
		WindowSize:    core.Size{W: 1280, H: 720},
		AspectW:       16,
		AspectH:       9,
		HalfHeight:    1,
		MovementSpeed: 1,
		ZoomStep:      0.1,
		MinHalfExtent: 0.05,
		MaxHalfExtent: 1000,
	}
}

// RegularHalfExtent returns the preset half extent derived from the aspect ratio.
func (o Options) RegularHalfExtent() core.Vec2 {
	return core.Vec2{X: o.HalfHeight * o.AspectW / o.AspectH, Y: o.HalfHeight}
}

// Motion is the snapshot the frame producer needs for one iteration.
type Motion struct {
	Camera     core.Vec2
	HalfExtent core.Vec2
	AxisX      core.AxisState
	AxisY      core.AxisState
	Speed      float32
}

// Displacement returns the camera offset for the elapsed time in seconds.
func (m Motion) Displacement(dt float64) core.Vec2 {
	speed := float64(m.Speed)
	return core.Vec2{
		X: speed * dt * m.HalfExtent.X * m.AxisX.Factor(),
		Y: speed * dt * m.HalfExtent.Y * m.AxisY.Factor(),
	}
}

// Snapshot is a copy of every field of the state.
type Snapshot struct {
	Camera         core.Vec2
	CursorRelative core.Vec2f
	CursorWorld    core.Vec2
	WindowSize     core.Size
	HalfExtent     core.Vec2
	AxisX          core.AxisState
	AxisY          core.AxisState
	MovementSpeed  float32
}

// State is the shared mutable world state.
type State struct {
	g guard

	camera         core.Vec2
	cursorRelative core.Vec2f
	cursorWorld    core.Vec2
	windowSize     core.Size
	halfExtent     core.Vec2
	axis           [2]core.AxisState
	movementSpeed  float32

	// Fixed after construction.
	regular  core.Vec2
	zoomStep float64
	minHalf  float64
	maxHalf  float64
}

// New creates the world state. Invalid options fall back to DefaultOptions
// field by field so the half extent invariant holds from the start.
func New(opts Options) *State {
	def := DefaultOptions()
	if !opts.WindowSize.Valid() {
		opts.WindowSize = def.WindowSize
	}
	if opts.AspectW <= 0 || opts.AspectH <= 0 {
		opts.AspectW, opts.AspectH = def.AspectW, def.AspectH
	}
	if opts.HalfHeight <= 0 {
		opts.HalfHeight = def.HalfHeight
	}
	if opts.MovementSpeed < 0 {
		opts.MovementSpeed = def.MovementSpeed
	}
	if opts.ZoomStep <= 0 {
		opts.ZoomStep = def.ZoomStep
	}

	regular := opts.RegularHalfExtent()
	return &State{
		camera:        opts.CameraPosition,
		cursorWorld:   opts.CameraPosition,
		windowSize:    opts.WindowSize,
		halfExtent:    regular,
		movementSpeed: opts.MovementSpeed,
		regular:       regular,
		zoomStep:      opts.ZoomStep,
		minHalf:       opts.MinHalfExtent,
		maxHalf:       opts.MaxHalfExtent,
	}
}

// Poisoned reports whether a writer panicked while holding the lock.
func (s *State) Poisoned() bool {
	return s.g.poisoned.Load()
}

// ReadCameraAndViewport returns the camera position and viewport half extent.
func (s *State) ReadCameraAndViewport() (camera, halfExtent core.Vec2) {
	s.g.read(func() {
		camera, halfExtent = s.camera, s.halfExtent
	})
	return camera, halfExtent
}

// ReadMotion returns everything needed to advance the camera, from one snapshot.
func (s *State) ReadMotion() Motion {
	var m Motion
	s.g.read(func() {
		m = Motion{
			Camera:     s.camera,
			HalfExtent: s.halfExtent,
			AxisX:      s.axis[core.AxisX],
			AxisY:      s.axis[core.AxisY],
			Speed:      s.movementSpeed,
		}
	})
	return m
}

// Snapshot copies every field under one read lock.
func (s *State) Snapshot() Snapshot {
	var snap Snapshot
	s.g.read(func() {
		snap = Snapshot{
			Camera:         s.camera,
			CursorRelative: s.cursorRelative,
			CursorWorld:    s.cursorWorld,
			WindowSize:     s.windowSize,
			HalfExtent:     s.halfExtent,
			AxisX:          s.axis[core.AxisX],
			AxisY:          s.axis[core.AxisY],
			MovementSpeed:  s.movementSpeed,
		}
	})
	return snap
}

// RegularHalfExtent returns the base half extent used by zoom presets.
func (s *State) RegularHalfExtent() core.Vec2 {
	return s.regular
}

// ApplyCursorMove stores the cursor position given in physical window units.
//
// The window size is read first under the read lock; the relative position is
// computed outside any lock and then stored, together with the derived world
// position, in one short write section.
func (s *State) ApplyCursorMove(x, y float32) {
	var size core.Size
	s.g.read(func() {
		size = s.windowSize
	})

	cx, cy := size.Center()
	rel := core.Vec2f{X: (x - cx) / cx, Y: (y - cy) / cy}

	s.g.write(func() {
		s.cursorRelative = rel
		s.cursorWorld = s.projectCursor()
	})
}

// ApplyZoomDelta scales the viewport half extent by one zoom step per scroll
// unit. Positive amounts zoom in. The result is clamped to the configured
// limits; a change that would make the extent non-positive without a lower
// limit is rejected. Returns true if the extent changed.
//
// The cursor world position is not updated here; callers follow up with
// RecomputeCursorWorld.
func (s *State) ApplyZoomDelta(scroll float32) bool {
	if scroll == 0 {
		return false
	}
	factor := 1 - s.zoomStep*float64(scroll)

	changed := false
	s.g.write(func() {
		next, ok := s.clampExtent(s.halfExtent.Scale(factor))
		if !ok || next == s.halfExtent {
			return
		}
		s.halfExtent = next
		changed = true
	})
	return changed
}

// RecomputeCursorWorld derives the cursor world position from the current
// camera, zoom and relative cursor position.
func (s *State) RecomputeCursorWorld() core.Vec2 {
	var world core.Vec2
	s.g.write(func() {
		s.cursorWorld = s.projectCursor()
		world = s.cursorWorld
	})
	return world
}

// SetViewportPreset overwrites the viewport half extent, clamped to the
// configured zoom limits. The camera is untouched. Non-finite or non-positive
// extents are rejected.
func (s *State) SetViewportPreset(halfExtent core.Vec2) error {
	if !halfExtent.Positive() || !halfExtent.Finite() {
		return fmt.Errorf("%w: %+v", ErrInvalidExtent, halfExtent)
	}
	s.g.write(func() {
		s.halfExtent, _ = s.clampExtent(halfExtent)
	})
	return nil
}

// SetAxisState applies a key press or release to one movement axis and
// returns the resulting state.
func (s *State) SetAxisState(axis core.Axis, ev core.AxisEvent) core.AxisState {
	if axis != core.AxisX && axis != core.AxisY {
		return core.AxisNone
	}
	var next core.AxisState
	s.g.write(func() {
		next = s.axis[axis].Reduce(ev)
		s.axis[axis] = next
	})
	return next
}

// Resize stores the physical window size. Zero dimensions (minimized windows)
// are rejected so cursor normalization never divides by zero.
func (s *State) Resize(size core.Size) error {
	if !size.Valid() {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, size.W, size.H)
	}
	s.g.write(func() {
		s.windowSize = size
	})
	return nil
}

// MoveCamera offsets the camera and returns the new position.
func (s *State) MoveCamera(delta core.Vec2) core.Vec2 {
	var pos core.Vec2
	s.g.write(func() {
		s.camera = s.camera.Add(delta)
		pos = s.camera
	})
	return pos
}

// projectCursor maps the relative cursor into world space. Caller holds the lock.
func (s *State) projectCursor() core.Vec2 {
	rel := core.Vec2{X: float64(s.cursorRelative.X), Y: float64(s.cursorRelative.Y)}
	return s.camera.Add(rel.Mul(s.halfExtent))
}

// clampExtent applies the zoom limits. Caller holds the lock.
func (s *State) clampExtent(v core.Vec2) (core.Vec2, bool) {
	if s.minHalf > 0 {
		v.X = max(v.X, s.minHalf)
		v.Y = max(v.Y, s.minHalf)
	}
	if s.maxHalf > 0 {
		v.X = min(v.X, s.maxHalf)
		v.Y = min(v.Y, s.maxHalf)
	}
	return v, v.Positive()
}
