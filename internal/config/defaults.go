package config

import (
	_ "embed"

	"github.com/vovakirdan/underground/internal/input"
)

//go:embed defaults/underground.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
		},
		Viewport: ViewportConfig{
			AspectWidth:   16,
			AspectHeight:  9,
			HalfHeight:    1,
			ZoomStep:      0.1,
			MinHalfExtent: 0.05,
			MaxHalfExtent: 1000,
		},
		Camera: CameraConfig{
			Speed: 1,
		},
		Loops: LoopsConfig{
			FrameRate: 60,
			SimRate:   30,
		},
		Spawn: SpawnConfig{
			Texture: 0,
			Extent:  0.2,
		},
		World: WorldConfig{
			Columns:     5,
			Rows:        1,
			OriginX:     0,
			OriginY:     0,
			TileExtent:  0.2,
			TileTexture: 1,
			Objects: []ObjectConfig{
				{X: 0, Y: 3, Texture: 0, Extent: 0.2},
			},
		},
		Bindings: input.DefaultSpecs(),
	}
}
