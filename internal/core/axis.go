package core

// Axis identifies one screen axis for movement input.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns a human-readable name for the axis.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "unknown"
	}
}

// Sign is the direction of a movement key along its axis.
// Y grows downward, so "up" keys use Negative on AxisY.
type Sign int

const (
	Negative Sign = -1
	Positive Sign = 1
)

// String returns "+" or "-".
func (s Sign) String() string {
	if s < 0 {
		return "-"
	}
	return "+"
}

// AxisState records which movement keys are currently held on one axis.
type AxisState uint8

const (
	AxisNone     AxisState = iota // No key held
	AxisPositive                  // Only the positive key held
	AxisNegative                  // Only the negative key held
	AxisBoth                      // Both opposing keys held
)

// String returns a human-readable name for the axis state.
func (s AxisState) String() string {
	switch s {
	case AxisNone:
		return "None"
	case AxisPositive:
		return "Positive"
	case AxisNegative:
		return "Negative"
	case AxisBoth:
		return "Both"
	default:
		return "Unknown"
	}
}

// AxisEvent is a press or release of the key bound to one direction of an axis.
type AxisEvent struct {
	Pressed bool
	Sign    Sign
}

// Press returns the event for pressing the key of the given sign.
func Press(s Sign) AxisEvent {
	return AxisEvent{Pressed: true, Sign: s}
}

// Release returns the event for releasing the key of the given sign.
func Release(s Sign) AxisEvent {
	return AxisEvent{Pressed: false, Sign: s}
}

// Reduce applies a press or release to the current state.
//
// Holding both keys yields AxisBoth; releasing one of them restores the
// direction of the key still held. Redundant events are no-ops.
func (s AxisState) Reduce(ev AxisEvent) AxisState {
	positive := ev.Sign >= 0

	switch {
	case ev.Pressed && positive:
		switch s {
		case AxisNone:
			return AxisPositive
		case AxisNegative:
			return AxisBoth
		}
	case ev.Pressed && !positive:
		switch s {
		case AxisNone:
			return AxisNegative
		case AxisPositive:
			return AxisBoth
		}
	case !ev.Pressed && positive:
		switch s {
		case AxisPositive:
			return AxisNone
		case AxisBoth:
			return AxisNegative
		}
	default:
		switch s {
		case AxisNegative:
			return AxisNone
		case AxisBoth:
			return AxisPositive
		}
	}
	return s
}

// Factor returns the signed multiplier used for camera displacement.
// AxisBoth cancels out to zero: opposing keys never resolve to last-key-wins.
func (s AxisState) Factor() float64 {
	switch s {
	case AxisPositive:
		return 1
	case AxisNegative:
		return -1
	default:
		return 0
	}
}
