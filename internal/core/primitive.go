package core

// VerticesPerQuad is the number of primitives emitted for one drawable quad
// (two counter-clockwise triangles).
const VerticesPerQuad = 6

// Primitive is a single GPU vertex record.
type Primitive struct {
	Position     [2]float32
	TextureIndex uint32
	TexCoords    [2]float32
}

// Normalized texture coordinates of the quad corners.
var (
	TexTopRight    = [2]float32{1, 0}
	TexTopLeft     = [2]float32{0, 0}
	TexBottomLeft  = [2]float32{0, 1}
	TexBottomRight = [2]float32{1, 1}
)

// Quad builds the six vertices of an axis-aligned textured square.
//
// The screen position is the world position relative to the camera. The
// half size is divided by the viewport half extent per axis so the quad
// keeps its aspect regardless of zoom. Corners are emitted as top-right,
// top-left, bottom-left, top-right, bottom-left, bottom-right.
//
// halfExtent must be positive on both axes.
func Quad(position Vec2, extent float32, texture uint32, camera, halfExtent Vec2) [VerticesPerQuad]Primitive {
	rel := position.Sub(camera)
	x, y := float32(rel.X), float32(rel.Y)
	hw := extent / float32(halfExtent.X)
	hh := extent / float32(halfExtent.Y)

	tr := Primitive{Position: [2]float32{x + hw, y - hh}, TextureIndex: texture, TexCoords: TexTopRight}
	tl := Primitive{Position: [2]float32{x - hw, y - hh}, TextureIndex: texture, TexCoords: TexTopLeft}
	bl := Primitive{Position: [2]float32{x - hw, y + hh}, TextureIndex: texture, TexCoords: TexBottomLeft}
	br := Primitive{Position: [2]float32{x + hw, y + hh}, TextureIndex: texture, TexCoords: TexBottomRight}

	return [VerticesPerQuad]Primitive{tr, tl, bl, tr, bl, br}
}

// QuadBounds returns the min and max screen coordinates of a quad's vertices.
// Returns false if quad does not hold exactly VerticesPerQuad primitives.
func QuadBounds(quad []Primitive) (min, max Vec2f, ok bool) {
	if len(quad) != VerticesPerQuad {
		return Vec2f{}, Vec2f{}, false
	}
	min = Vec2f{X: quad[0].Position[0], Y: quad[0].Position[1]}
	max = min
	for _, p := range quad[1:] {
		if p.Position[0] < min.X {
			min.X = p.Position[0]
		}
		if p.Position[1] < min.Y {
			min.Y = p.Position[1]
		}
		if p.Position[0] > max.X {
			max.X = p.Position[0]
		}
		if p.Position[1] > max.Y {
			max.Y = p.Position[1]
		}
	}
	return min, max, true
}
