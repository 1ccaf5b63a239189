// Package input turns raw window events into world mutations.
// Presenters push events into a Queue; a single Dispatcher drains it and
// routes every event through the binding table.
package input

import "strconv"

// Event is a raw input event delivered by a presentation boundary.
type Event interface {
	inputEvent()
}

// PointerMove reports the pointer position in window pixels (or cells).
type PointerMove struct {
	X, Y float32
}

func (PointerMove) inputEvent() {}

// PointerButton reports a mouse button press or release.
type PointerButton struct {
	Button  Button
	Pressed bool
}

func (PointerButton) inputEvent() {}

// Scroll reports a wheel movement. Positive deltas zoom in.
type Scroll struct {
	Delta float32
}

func (Scroll) inputEvent() {}

// WindowResize reports new physical window dimensions.
type WindowResize struct {
	Width, Height uint32
}

func (WindowResize) inputEvent() {}

// KeyCode is an opaque key name such as "w" or "space".
type KeyCode string

// Key reports a keyboard press or release.
type Key struct {
	Code    KeyCode
	Pressed bool
}

func (Key) inputEvent() {}

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	buttonOtherBase // Extra buttons are numbered from here
)

// ButtonOther returns the n-th extra mouse button.
func ButtonOther(n int) Button {
	return buttonOtherBase + Button(n)
}

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "other" + strconv.Itoa(int(b-buttonOtherBase))
	}
}

// Convenience constructors used by presenters and tests.

// Press returns a key press event.
func Press(code KeyCode) Key { return Key{Code: code, Pressed: true} }

// Release returns a key release event.
func Release(code KeyCode) Key { return Key{Code: code, Pressed: false} }
