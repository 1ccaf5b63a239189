package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/underground/internal/core"
	"github.com/vovakirdan/underground/internal/input"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, expected nil", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.Window != def.Window || cfg.Viewport != def.Viewport || cfg.Camera != def.Camera || cfg.Loops != def.Loops {
		t.Errorf("embedded config differs from defaults:\n got %+v\nwant %+v", cfg, def)
	}
	if len(cfg.Bindings) != len(def.Bindings) {
		t.Errorf("embedded bindings = %d, expected %d", len(cfg.Bindings), len(def.Bindings))
	}

	embedded, err := cfg.BindingTable()
	if err != nil {
		t.Fatalf("BindingTable() failed: %v", err)
	}
	for _, e := range input.DefaultTable().Entries() {
		b, ok := embedded.Lookup(e.Source)
		if !ok || b != e.Binding {
			t.Errorf("embedded binding for %v = %+v, expected %+v", e.Source, b, e.Binding)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := "loops:\n  frame_rate: 120\ncamera:\n  speed: 2.5\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadWithSource(path)
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Loops.FrameRate != 120 {
		t.Errorf("FrameRate = %v, expected 120", cfg.Loops.FrameRate)
	}
	if cfg.Camera.Speed != 2.5 {
		t.Errorf("Speed = %v, expected 2.5", cfg.Camera.Speed)
	}
	// Unset fields keep defaults.
	if cfg.Loops.SimRate != DefaultConfig().Loops.SimRate {
		t.Errorf("SimRate = %v, expected default %v", cfg.Loops.SimRate, DefaultConfig().Loops.SimRate)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of missing custom path should fail")
	}

	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "loops: [", "parse"},
		{"zero rate", "loops:\n  frame_rate: 0\n", "frame_rate"},
		{"bad source", "bindings:\n  - { source: f9, press: place }\n", "unknown source"},
		{"bad action", "bindings:\n  - { source: w, press: fly }\n", "unknown action"},
		{"zero window", "window:\n  width: 0\n", "window size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, expected it to mention %q", err, tt.want)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.X = 4
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) failed: %v", err)
	}
	if back.Camera.X != 4 {
		t.Errorf("Camera.X = %v, expected 4", back.Camera.X)
	}
}

func TestWorldOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.X, cfg.Camera.Y = 1, 2
	opts := cfg.WorldOptions()

	if opts.WindowSize != (core.Size{W: 1280, H: 720}) {
		t.Errorf("WindowSize = %+v", opts.WindowSize)
	}
	if opts.CameraPosition != (core.Vec2{X: 1, Y: 2}) {
		t.Errorf("CameraPosition = %+v, expected (1, 2)", opts.CameraPosition)
	}
	if half := opts.RegularHalfExtent(); half.Y != 1 || half.X != 16.0/9.0 {
		t.Errorf("RegularHalfExtent() = %+v", half)
	}
}

func TestBindingTableFallsBackToDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bindings = nil

	table, err := cfg.BindingTable()
	if err != nil {
		t.Fatalf("BindingTable() failed: %v", err)
	}
	if len(table.Entries()) != len(input.DefaultTable().Entries()) {
		t.Errorf("Entries() = %d, expected defaults", len(table.Entries()))
	}
}
