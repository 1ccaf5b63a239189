package registry

import "github.com/vovakirdan/underground/internal/core"

// Kind is the closed set of drawable object variants.
type Kind uint8

const (
	KindDebug Kind = iota // Dynamic placeholder object, optionally animated
	KindTile              // Static background tile
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindDebug:
		return "debug"
	case KindTile:
		return "tile"
	default:
		return "unknown"
	}
}

// Animation cycles an object's texture through a list of frames.
// An animation with fewer than two frames never changes the texture.
type Animation struct {
	Frames    []uint32 // Texture indices to cycle through
	FrameTime float64  // Seconds per frame

	elapsed float64
	frame   int
}

// Object is a drawable entry of the registry.
type Object struct {
	Kind     Kind
	Position core.Vec2 // World coordinates
	Extent   float32   // Half size used for quad construction
	Texture  uint32    // Opaque texture catalog handle
	Anim     Animation
}

// NewDebugObject creates a dynamic debug object.
func NewDebugObject(pos core.Vec2, texture uint32, extent float32) Object {
	return Object{Kind: KindDebug, Position: pos, Extent: extent, Texture: texture}
}

// NewTile creates a static background tile.
func NewTile(pos core.Vec2, texture uint32, extent float32) Object {
	return Object{Kind: KindTile, Position: pos, Extent: extent, Texture: texture}
}

// AdvanceAnimation moves the animation forward by dt seconds.
// Tiles never animate.
func (o *Object) AdvanceAnimation(dt float64) {
	if o.Kind == KindTile || len(o.Anim.Frames) < 2 || o.Anim.FrameTime <= 0 || dt <= 0 {
		return
	}
	o.Anim.elapsed += dt
	for o.Anim.elapsed >= o.Anim.FrameTime {
		o.Anim.elapsed -= o.Anim.FrameTime
		o.Anim.frame = (o.Anim.frame + 1) % len(o.Anim.Frames)
	}
	o.Texture = o.Anim.Frames[o.Anim.frame]
}

// AppendPrimitives appends the object's vertices for the given camera transform.
// halfExtent must be positive on both axes.
func (o Object) AppendPrimitives(dst []core.Primitive, camera, halfExtent core.Vec2) []core.Primitive {
	quad := core.Quad(o.Position, o.Extent, o.Texture, camera, halfExtent)
	return append(dst, quad[:]...)
}
