package input

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/underground/internal/core"
)

// ActionKind selects what an Action does when its source fires.
type ActionKind int

const (
	ActionNone           ActionKind = iota
	ActionCameraPan                 // Hold to move the camera along one axis
	ActionZoomPreset                // Set the viewport to a multiple of the regular extent
	ActionPlaceObject               // Spawn a debug object under the cursor
	ActionSimulateScroll            // Behave like one wheel notch
)

// String returns a human-readable name for the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "None"
	case ActionCameraPan:
		return "CameraPan"
	case ActionZoomPreset:
		return "ZoomPreset"
	case ActionPlaceObject:
		return "PlaceObject"
	case ActionSimulateScroll:
		return "SimulateScroll"
	default:
		return "Unknown"
	}
}

// Action is a tagged description of an input effect. Only the fields
// relevant to Kind are meaningful.
type Action struct {
	Kind   ActionKind
	Axis   core.Axis // CameraPan
	Sign   core.Sign // CameraPan, SimulateScroll
	Factor float64   // ZoomPreset multiplier of the regular half extent
}

// Pan returns a camera pan action.
func Pan(axis core.Axis, sign core.Sign) Action {
	return Action{Kind: ActionCameraPan, Axis: axis, Sign: sign}
}

// ZoomPreset returns a zoom preset action.
func ZoomPreset(factor float64) Action {
	return Action{Kind: ActionZoomPreset, Factor: factor}
}

// PlaceObject returns an object placement action.
func PlaceObject() Action {
	return Action{Kind: ActionPlaceObject}
}

// SimulateScroll returns an action that scrolls by one notch in sign direction.
func SimulateScroll(sign core.Sign) Action {
	return Action{Kind: ActionSimulateScroll, Sign: sign}
}

// String formats the action in the configuration syntax accepted by ParseAction.
func (a Action) String() string {
	switch a.Kind {
	case ActionCameraPan:
		return "pan:" + a.Sign.String() + a.Axis.String()
	case ActionZoomPreset:
		return "zoom:" + strconv.FormatFloat(a.Factor, 'g', -1, 64)
	case ActionPlaceObject:
		return "place"
	case ActionSimulateScroll:
		return "scroll:" + a.Sign.String() + "1"
	default:
		return "none"
	}
}

// ParseAction parses the configuration syntax:
//
//	none | place | pan:+x | pan:-y | zoom:<factor> | scroll:+1 | scroll:-1
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	name, arg, _ := strings.Cut(s, ":")

	switch name {
	case "", "none":
		return Action{}, nil
	case "place":
		return PlaceObject(), nil
	case "pan":
		if len(arg) != 2 {
			return Action{}, fmt.Errorf("input: invalid pan action %q", s)
		}
		sign, err := parseSign(arg[:1])
		if err != nil {
			return Action{}, fmt.Errorf("input: invalid pan action %q: %w", s, err)
		}
		switch arg[1] {
		case 'x':
			return Pan(core.AxisX, sign), nil
		case 'y':
			return Pan(core.AxisY, sign), nil
		}
		return Action{}, fmt.Errorf("input: invalid pan axis in %q", s)
	case "zoom":
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Action{}, fmt.Errorf("input: invalid zoom factor %q: %w", s, err)
		}
		if f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
			return Action{}, fmt.Errorf("input: zoom factor must be positive and finite, got %v", f)
		}
		return ZoomPreset(f), nil
	case "scroll":
		if arg == "" || strings.TrimLeft(arg, "+-") != "1" {
			return Action{}, fmt.Errorf("input: invalid scroll action %q", s)
		}
		sign, err := parseSign(arg[:1])
		if err != nil {
			sign = core.Positive
		}
		return SimulateScroll(sign), nil
	}
	return Action{}, fmt.Errorf("input: unknown action %q", s)
}

func parseSign(s string) (core.Sign, error) {
	switch s {
	case "+":
		return core.Positive, nil
	case "-":
		return core.Negative, nil
	}
	return 0, fmt.Errorf("sign must be + or -, got %q", s)
}
