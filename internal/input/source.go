package input

import "strings"

// Source is a bindable physical input. Sources form a fixed index space so
// binding tables and per-source state can be plain arrays.
type Source int

const (
	SourceW Source = iota
	SourceA
	SourceS
	SourceD
	SourceMouseLeft
	SourceMouseRight
	SourceMouseMiddle
	SourceSpace
	SourceCtrl
	SourceJ
	SourceL
	SourceDigit1
	SourceDigit2
	SourceDigit3

	NumSources int = iota
)

var sourceNames = [NumSources]string{
	SourceW:           "w",
	SourceA:           "a",
	SourceS:           "s",
	SourceD:           "d",
	SourceMouseLeft:   "mouse_left",
	SourceMouseRight:  "mouse_right",
	SourceMouseMiddle: "mouse_middle",
	SourceSpace:       "space",
	SourceCtrl:        "ctrl",
	SourceJ:           "j",
	SourceL:           "l",
	SourceDigit1:      "1",
	SourceDigit2:      "2",
	SourceDigit3:      "3",
}

// String returns the source's configuration name.
func (s Source) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return sourceNames[s]
}

// Valid reports whether s is inside the source index space.
func (s Source) Valid() bool {
	return s >= 0 && int(s) < NumSources
}

// IsMouse reports whether s is a mouse button.
func (s Source) IsMouse() bool {
	return s == SourceMouseLeft || s == SourceMouseRight || s == SourceMouseMiddle
}

// ParseSource looks up a source by its configuration name (case-insensitive).
func ParseSource(name string) (Source, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range sourceNames {
		if n == name {
			return Source(i), true
		}
	}
	return 0, false
}

// SourceForKey maps a key code to its source. Returns false for keys outside
// the source index space and for mouse names.
func SourceForKey(code KeyCode) (Source, bool) {
	key := strings.ToLower(string(code))
	switch key {
	case " ":
		return SourceSpace, true
	case "control", "lctrl", "rctrl":
		return SourceCtrl, true
	}
	src, ok := ParseSource(key)
	if !ok || src.IsMouse() {
		return 0, false
	}
	return src, true
}

// SourceForButton maps a mouse button to its source.
func SourceForButton(b Button) (Source, bool) {
	switch b {
	case ButtonLeft:
		return SourceMouseLeft, true
	case ButtonRight:
		return SourceMouseRight, true
	case ButtonMiddle:
		return SourceMouseMiddle, true
	default:
		return 0, false
	}
}
