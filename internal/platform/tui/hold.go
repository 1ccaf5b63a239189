package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/underground/internal/input"
)

// Terminals report key presses and auto-repeats but never releases.
// holdTracker turns that stream into press/release pairs: the first press
// is forwarded, repeats extend the hold, and the release is synthesized once
// no repeat arrives within the hold window.
type holdTracker struct {
	initial time.Duration // Covers the terminal's delay before auto-repeat
	repeat  time.Duration // Covers the gap between auto-repeats

	held map[input.KeyCode]uint64 // Key -> sequence of its latest press
	seq  uint64
}

const (
	defaultInitialHold = 550 * time.Millisecond
	defaultRepeatHold  = 120 * time.Millisecond
)

func newHoldTracker(initial, repeat time.Duration) *holdTracker {
	if initial <= 0 {
		initial = defaultInitialHold
	}
	if repeat <= 0 {
		repeat = defaultRepeatHold
	}
	return &holdTracker{
		initial: initial,
		repeat:  repeat,
		held:    make(map[input.KeyCode]uint64),
	}
}

// press records a key press. It returns the events to forward (a Press on
// the first report only) and the command that will expire the hold.
func (h *holdTracker) press(code input.KeyCode) ([]input.Event, tea.Cmd) {
	h.seq++
	seq := h.seq

	var events []input.Event
	window := h.repeat
	if _, held := h.held[code]; !held {
		events = append(events, input.Press(code))
		window = h.initial
	}
	h.held[code] = seq

	return events, tea.Tick(window, func(time.Time) tea.Msg {
		return holdExpiredMsg{code: code, seq: seq}
	})
}

// expire handles a hold timeout. A stale timeout (the key repeated since)
// produces nothing.
func (h *holdTracker) expire(msg holdExpiredMsg) []input.Event {
	seq, held := h.held[msg.code]
	if !held || seq != msg.seq {
		return nil
	}
	delete(h.held, msg.code)
	return []input.Event{input.Release(msg.code)}
}

// releaseAll synthesizes releases for every held key.
func (h *holdTracker) releaseAll() []input.Event {
	events := make([]input.Event, 0, len(h.held))
	for code := range h.held {
		events = append(events, input.Release(code))
	}
	clear(h.held)
	return events
}
