package tui

import (
	"math"

	"github.com/vovakirdan/underground/internal/core"
	"github.com/vovakirdan/underground/internal/engine"
)

// Rasterize draws a frame batch into screen. Each quad is filled over the
// cells its bounding box covers, in batch order, so later quads overwrite
// earlier ones. Quads are in normalized device coordinates: (-1, -1) is the
// top-left corner of the screen and (1, 1) the bottom-right.
//
// Returns the number of quads that touched the screen.
func Rasterize(batch engine.FrameBatch, screen *core.Screen) int {
	screen.Clear()
	w, h := float64(screen.Width()), float64(screen.Height())
	if w == 0 || h == 0 {
		return 0
	}
	bounds := core.NewRect(0, 0, screen.Width(), screen.Height())

	drawn := 0
	prims := batch.Primitives
	for i := 0; i+core.VerticesPerQuad <= len(prims); i += core.VerticesPerQuad {
		quad := prims[i : i+core.VerticesPerQuad]
		lo, hi, ok := core.QuadBounds(quad)
		if !ok {
			continue
		}

		r := cellRect(lo, hi, w, h)
		if !r.Intersects(bounds) {
			continue
		}
		sw := core.TextureSwatch(quad[0].TextureIndex)
		screen.FillRect(r, sw.Glyph, sw.Color)
		drawn++
	}
	return drawn
}

// cellRect converts NDC bounds to a cell rectangle at least one cell wide and tall.
func cellRect(lo, hi core.Vec2f, w, h float64) core.Rect {
	x0 := int(math.Floor((float64(lo.X) + 1) / 2 * w))
	y0 := int(math.Floor((float64(lo.Y) + 1) / 2 * h))
	x1 := int(math.Ceil((float64(hi.X) + 1) / 2 * w))
	y1 := int(math.Ceil((float64(hi.Y) + 1) / 2 * h))

	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// cursorGlyph marks the pointer cell on top of the rasterized frame.
const cursorGlyph = '+'

// DrawCursor marks the cell under a cursor given in normalized window
// coordinates, where (-1, -1) is the top-left corner. Cursors outside the
// screen are not drawn.
func DrawCursor(screen *core.Screen, rel core.Vec2f) {
	if rel.X < -1 || rel.X > 1 || rel.Y < -1 || rel.Y > 1 {
		return
	}
	w, h := screen.Width(), screen.Height()
	x := min(int(math.Floor((float64(rel.X)+1)/2*float64(w))), w-1)
	y := min(int(math.Floor((float64(rel.Y)+1)/2*float64(h))), h-1)
	screen.SetCell(x, y, core.Cell{Rune: cursorGlyph, Color: core.ColorBrightWhite})
}
