// Package registry stores the drawable objects of the world.
// Dynamic objects are placed and animated at runtime; static objects form the
// background and are seeded once. Each set lives in its own Arena so that the
// frame producer can build both concurrently.
package registry

import "github.com/vovakirdan/underground/internal/core"

// Registry groups the dynamic and static object arenas.
type Registry struct {
	Dynamic *Arena
	Static  *Arena
}

// New creates a registry with two empty arenas.
func New() *Registry {
	return &Registry{
		Dynamic: NewArena(),
		Static:  NewArena(),
	}
}

// WithDynamicRead runs fn with read access to the dynamic objects.
func (r *Registry) WithDynamicRead(fn func(ObjectView)) {
	r.Dynamic.WithRead(fn)
}

// WithDynamicWrite runs fn with write access to the dynamic objects.
func (r *Registry) WithDynamicWrite(fn func(*ObjectEditor)) {
	r.Dynamic.WithWrite(fn)
}

// WithStaticRead runs fn with read access to the static objects.
func (r *Registry) WithStaticRead(fn func(ObjectView)) {
	r.Static.WithRead(fn)
}

// WithStaticWrite runs fn with write access to the static objects.
func (r *Registry) WithStaticWrite(fn func(*ObjectEditor)) {
	r.Static.WithWrite(fn)
}

// ReplaceStatic swaps the whole static set.
func (r *Registry) ReplaceStatic(objs []Object) []Handle {
	return r.Static.Replace(objs)
}

// Len returns the total number of live objects.
func (r *Registry) Len() int {
	return r.Dynamic.Len() + r.Static.Len()
}

// TileGrid lays out columns×rows tiles centered on origin, spaced one tile
// width apart.
func TileGrid(columns, rows int, origin core.Vec2, extent float32, texture uint32) []Object {
	if columns <= 0 || rows <= 0 {
		return nil
	}
	step := 2 * float64(extent)
	startX := origin.X - step*float64(columns-1)/2
	startY := origin.Y - step*float64(rows-1)/2

	tiles := make([]Object, 0, columns*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			pos := core.Vec2{X: startX + step*float64(col), Y: startY + step*float64(row)}
			tiles = append(tiles, NewTile(pos, texture, extent))
		}
	}
	return tiles
}
