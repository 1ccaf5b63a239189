// Package headless drives the engine without a terminal: scripted input is
// replayed on a timeline while frame batches are drained and summarized.
package headless

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/underground/internal/input"
)

// ScriptStep sends one event at an offset from the start of the run.
type ScriptStep struct {
	At    time.Duration
	Event input.Event
}

// scriptEntry is the YAML form of a step. Exactly one event field is set.
type scriptEntry struct {
	At      string      `yaml:"at"`
	Key     string      `yaml:"key,omitempty"`
	Button  string      `yaml:"button,omitempty"`
	Pressed *bool       `yaml:"pressed,omitempty"`
	Pointer *pointXY    `yaml:"pointer,omitempty"`
	Scroll  *float32    `yaml:"scroll,omitempty"`
	Resize  *resizeSize `yaml:"resize,omitempty"`
}

type pointXY struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

type resizeSize struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// ParseScript decodes a YAML list of steps:
//
//	- { at: 0s, key: w, pressed: true }
//	- { at: 500ms, key: w, pressed: false }
//	- { at: 600ms, pointer: { x: 640, y: 360 } }
//	- { at: 700ms, button: left, pressed: true }
//	- { at: 800ms, scroll: 1 }
//	- { at: 900ms, resize: { width: 800, height: 600 } }
//
// Steps are returned sorted by offset; steps sharing an offset keep file order.
func ParseScript(data []byte) ([]ScriptStep, error) {
	var entries []scriptEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("headless: failed to parse script: %w", err)
	}

	steps := make([]ScriptStep, 0, len(entries))
	for i, e := range entries {
		step, err := e.step()
		if err != nil {
			return nil, fmt.Errorf("headless: script step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].At < steps[j].At
	})
	return steps, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) ([]ScriptStep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("headless: failed to read script %s: %w", path, err)
	}
	return ParseScript(data)
}

func (e scriptEntry) step() (ScriptStep, error) {
	var at time.Duration
	if e.At != "" {
		d, err := time.ParseDuration(e.At)
		if err != nil {
			return ScriptStep{}, fmt.Errorf("invalid offset %q: %w", e.At, err)
		}
		if d < 0 {
			return ScriptStep{}, fmt.Errorf("negative offset %q", e.At)
		}
		at = d
	}

	var events []input.Event
	pressed := e.Pressed == nil || *e.Pressed
	if e.Key != "" {
		events = append(events, input.Key{Code: input.KeyCode(e.Key), Pressed: pressed})
	}
	if e.Button != "" {
		b, err := parseButton(e.Button)
		if err != nil {
			return ScriptStep{}, err
		}
		events = append(events, input.PointerButton{Button: b, Pressed: pressed})
	}
	if e.Pointer != nil {
		events = append(events, input.PointerMove{X: e.Pointer.X, Y: e.Pointer.Y})
	}
	if e.Scroll != nil {
		events = append(events, input.Scroll{Delta: *e.Scroll})
	}
	if e.Resize != nil {
		events = append(events, input.WindowResize{Width: e.Resize.Width, Height: e.Resize.Height})
	}

	if len(events) != 1 {
		return ScriptStep{}, fmt.Errorf("expected exactly one event, got %d", len(events))
	}
	return ScriptStep{At: at, Event: events[0]}, nil
}

func parseButton(name string) (input.Button, error) {
	switch name {
	case "left":
		return input.ButtonLeft, nil
	case "right":
		return input.ButtonRight, nil
	case "middle":
		return input.ButtonMiddle, nil
	}
	return 0, fmt.Errorf("unknown button %q", name)
}
