package registry

import (
	"testing"

	"github.com/vovakirdan/underground/internal/core"
)

func TestAdvanceAnimationCycles(t *testing.T) {
	obj := NewDebugObject(core.Vec2{}, 4, 0.2)
	obj.Anim = Animation{Frames: []uint32{4, 5, 6}, FrameTime: 0.5}

	tests := []struct {
		dt       float64
		expected uint32
	}{
		{0.25, 4},
		{0.25, 5},
		{0.5, 6},
		{0.5, 4},
		{1.0, 6},
	}

	for i, tt := range tests {
		obj.AdvanceAnimation(tt.dt)
		if obj.Texture != tt.expected {
			t.Errorf("step %d: Texture = %d, expected %d", i, obj.Texture, tt.expected)
		}
	}
}

func TestAdvanceAnimationNoop(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
	}{
		{"no frames", NewDebugObject(core.Vec2{}, 2, 0.2)},
		{"single frame", Object{Kind: KindDebug, Texture: 2, Anim: Animation{Frames: []uint32{7}, FrameTime: 0.1}}},
		{"zero frame time", Object{Kind: KindDebug, Texture: 2, Anim: Animation{Frames: []uint32{7, 8}}}},
		{"tile", Object{Kind: KindTile, Texture: 2, Anim: Animation{Frames: []uint32{7, 8}, FrameTime: 0.1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := tt.obj
			obj.AdvanceAnimation(1)
			if obj.Texture != 2 {
				t.Errorf("Texture = %d, expected 2", obj.Texture)
			}
		})
	}
}

func TestObjectAppendPrimitives(t *testing.T) {
	obj := NewTile(core.Vec2{}, 1, 0.4)
	prims := obj.AppendPrimitives(nil, core.Vec2{}, core.Vec2{X: 1, Y: 1})

	expected := core.Quad(core.Vec2{}, 0.4, 1, core.Vec2{}, core.Vec2{X: 1, Y: 1})
	if len(prims) != len(expected) {
		t.Fatalf("len = %d, expected %d", len(prims), len(expected))
	}
	for i := range expected {
		if prims[i] != expected[i] {
			t.Errorf("prims[%d] = %+v, expected %+v", i, prims[i], expected[i])
		}
	}
}

func TestKindString(t *testing.T) {
	if KindDebug.String() != "debug" || KindTile.String() != "tile" || Kind(9).String() != "unknown" {
		t.Error("Kind.String() returned unexpected names")
	}
}
