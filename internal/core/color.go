package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined cell colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Swatch is the terminal appearance of one texture.
type Swatch struct {
	Glyph rune
	Color Color
}

// texturePalette stands in for the texture catalog on character displays.
// Index 0 is the debug texture, index 1 the background tile.
var texturePalette = []Swatch{
	{Glyph: '█', Color: ColorBrightMagenta},
	{Glyph: '▒', Color: ColorGray},
	{Glyph: '▓', Color: ColorGreen},
	{Glyph: '█', Color: ColorOrange},
	{Glyph: '░', Color: ColorCyan},
	{Glyph: '▓', Color: ColorBrightYellow},
	{Glyph: '█', Color: ColorBlue},
	{Glyph: '▒', Color: ColorRed},
}

// TextureSwatch returns the glyph and color for a texture index.
// Indices beyond the palette wrap around.
func TextureSwatch(texture uint32) Swatch {
	return texturePalette[texture%uint32(len(texturePalette))] //nolint:gosec // palette is tiny
}
