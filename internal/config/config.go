// Package config provides YAML-based configuration loading for the engine:
// window and viewport geometry, loop rates, the world seed and key bindings.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/underground/internal/core"
	"github.com/vovakirdan/underground/internal/input"
	"github.com/vovakirdan/underground/internal/world"
)

// Config contains the whole application configuration.
type Config struct {
	Window   WindowConfig        `yaml:"window"`
	Viewport ViewportConfig      `yaml:"viewport"`
	Camera   CameraConfig        `yaml:"camera"`
	Loops    LoopsConfig         `yaml:"loops"`
	Spawn    SpawnConfig         `yaml:"spawn"`
	World    WorldConfig         `yaml:"world"`
	Bindings []input.BindingSpec `yaml:"bindings"`
}

// WindowConfig defines the initial physical window size.
type WindowConfig struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// ViewportConfig defines the visible world region and zoom limits.
type ViewportConfig struct {
	AspectWidth   float64 `yaml:"aspect_width"`
	AspectHeight  float64 `yaml:"aspect_height"`
	HalfHeight    float64 `yaml:"half_height"` // Vertical half extent at regular zoom
	ZoomStep      float64 `yaml:"zoom_step"`   // Fraction of the extent per scroll unit
	MinHalfExtent float64 `yaml:"min_half_extent"`
	MaxHalfExtent float64 `yaml:"max_half_extent"`
}

// CameraConfig defines the starting camera.
type CameraConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Speed float32 `yaml:"speed"` // Viewport half extents per second
}

// LoopsConfig defines loop rates in Hz.
type LoopsConfig struct {
	FrameRate float64 `yaml:"frame_rate"` // Frame producer
	SimRate   float64 `yaml:"sim_rate"`   // Simulation driver
}

// SpawnConfig is the template for objects placed with the mouse.
type SpawnConfig struct {
	Texture   uint32   `yaml:"texture"`
	Extent    float32  `yaml:"extent"`
	Frames    []uint32 `yaml:"frames,omitempty"`
	FrameTime float64  `yaml:"frame_time,omitempty"`
}

// WorldConfig defines the objects seeded at startup.
type WorldConfig struct {
	Columns     int            `yaml:"columns"`
	Rows        int            `yaml:"rows"`
	OriginX     float64        `yaml:"origin_x"`
	OriginY     float64        `yaml:"origin_y"`
	TileExtent  float32        `yaml:"tile_extent"`
	TileTexture uint32         `yaml:"tile_texture"`
	Objects     []ObjectConfig `yaml:"objects"` // Dynamic debug objects
}

// ObjectConfig places one dynamic object.
type ObjectConfig struct {
	X         float64  `yaml:"x"`
	Y         float64  `yaml:"y"`
	Texture   uint32   `yaml:"texture"`
	Extent    float32  `yaml:"extent"`
	Frames    []uint32 `yaml:"frames,omitempty"`
	FrameTime float64  `yaml:"frame_time,omitempty"`
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be non-zero, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Viewport.AspectWidth > 0 && c.Viewport.AspectHeight > 0, "viewport aspect must be positive")
	check(c.Viewport.HalfHeight > 0, "viewport half_height must be positive, got %v", c.Viewport.HalfHeight)
	check(c.Viewport.ZoomStep > 0 && c.Viewport.ZoomStep < 1, "viewport zoom_step must be in (0, 1), got %v", c.Viewport.ZoomStep)
	check(c.Viewport.MinHalfExtent >= 0, "viewport min_half_extent must not be negative")
	check(c.Viewport.MaxHalfExtent == 0 || c.Viewport.MaxHalfExtent > c.Viewport.MinHalfExtent,
		"viewport max_half_extent must exceed min_half_extent")
	check(c.Camera.Speed >= 0, "camera speed must not be negative, got %v", c.Camera.Speed)
	check(c.Loops.FrameRate > 0, "loops frame_rate must be positive, got %v", c.Loops.FrameRate)
	check(c.Loops.SimRate > 0, "loops sim_rate must be positive, got %v", c.Loops.SimRate)
	check(c.Spawn.Extent > 0, "spawn extent must be positive, got %v", c.Spawn.Extent)
	check(c.World.Columns >= 0 && c.World.Rows >= 0, "world grid must not be negative")
	check(c.World.Columns*c.World.Rows == 0 || c.World.TileExtent > 0, "world tile_extent must be positive")
	for i, obj := range c.World.Objects {
		check(obj.Extent > 0, "world object %d extent must be positive", i)
	}

	if _, err := input.TableFromConfig(c.Bindings); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// WorldOptions converts the configuration to world state options.
func (c Config) WorldOptions() world.Options {
	return world.Options{
		WindowSize:     core.Size{W: c.Window.Width, H: c.Window.Height},
		AspectW:        c.Viewport.AspectWidth,
		AspectH:        c.Viewport.AspectHeight,
		HalfHeight:     c.Viewport.HalfHeight,
		MovementSpeed:  c.Camera.Speed,
		ZoomStep:       c.Viewport.ZoomStep,
		MinHalfExtent:  c.Viewport.MinHalfExtent,
		MaxHalfExtent:  c.Viewport.MaxHalfExtent,
		CameraPosition: core.Vec2{X: c.Camera.X, Y: c.Camera.Y},
	}
}

// SpawnTemplate converts the spawn section for the input dispatcher.
func (c Config) SpawnTemplate() input.Spawn {
	return input.Spawn{
		Texture:   c.Spawn.Texture,
		Extent:    c.Spawn.Extent,
		Frames:    c.Spawn.Frames,
		FrameTime: c.Spawn.FrameTime,
	}
}

// BindingTable builds the binding table. An empty list uses the defaults.
func (c Config) BindingTable() (*input.Table, error) {
	if len(c.Bindings) == 0 {
		return input.DefaultTable(), nil
	}
	return input.TableFromConfig(c.Bindings)
}
