package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/underground/internal/input"
)

// KeyMapper translates Bubble Tea key messages to input key codes.
// This centralizes terminal key names and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a key code.
// Returns ok=false for keys the engine does not know, and isQuit for quit requests.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (code input.KeyCode, isQuit, ok bool) {
	k := msg.String()

	// Global quit keys
	switch k {
	case "ctrl+c", "q", "esc":
		return "", true, false
	}

	// Arrow keys mirror WASD
	switch k {
	case " ":
		return "space", false, true
	case "up":
		return "w", false, true
	case "left":
		return "a", false, true
	case "down":
		return "s", false, true
	case "right":
		return "d", false, true
	}

	code = input.KeyCode(strings.ToLower(k))
	if _, known := input.SourceForKey(code); !known {
		return "", false, false
	}
	return code, false, true
}

// MapMouse translates a mouse message to input events.
// Wheel notches become Scroll events; up zooms in.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) []input.Event {
	move := input.PointerMove{X: float32(msg.X) + 0.5, Y: float32(msg.Y) + 0.5}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return []input.Event{move, input.Scroll{Delta: 1}}
	case tea.MouseButtonWheelDown:
		return []input.Event{move, input.Scroll{Delta: -1}}
	}

	var button input.Button
	switch msg.Button {
	case tea.MouseButtonLeft:
		button = input.ButtonLeft
	case tea.MouseButtonRight:
		button = input.ButtonRight
	case tea.MouseButtonMiddle:
		button = input.ButtonMiddle
	case tea.MouseButtonNone:
		return []input.Event{move}
	default:
		button = input.ButtonOther(int(msg.Button))
	}

	switch msg.Action {
	case tea.MouseActionPress:
		return []input.Event{move, input.PointerButton{Button: button, Pressed: true}}
	case tea.MouseActionRelease:
		return []input.Event{move, input.PointerButton{Button: button, Pressed: false}}
	default:
		return []input.Event{move}
	}
}

// HelpKeyMap describes the controls for the help footer.
type HelpKeyMap struct {
	Pan     key.Binding
	Zoom    key.Binding
	Presets key.Binding
	Place   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k HelpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pan, k.Zoom, k.Place, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k HelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pan, k.Place},
		{k.Zoom, k.Presets},
		{k.Help, k.Quit},
	}
}

// DefaultHelpKeyMap returns the help entries for the default bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Pan: key.NewBinding(
			key.WithKeys("w", "a", "s", "d", "up", "left", "down", "right"),
			key.WithHelp("wasd", "pan"),
		),
		Zoom: key.NewBinding(
			key.WithKeys("j", "l"),
			key.WithHelp("j/l/wheel", "zoom"),
		),
		Presets: key.NewBinding(
			key.WithKeys("1", "2", "3", " "),
			key.WithHelp("1/2/3/space", "zoom preset"),
		),
		Place: key.NewBinding(
			key.WithKeys("click"),
			key.WithHelp("click", "place object"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
