// Package tui is the terminal presentation boundary. It turns Bubble Tea
// messages into input events and draws the newest frame batch as colored
// character cells.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/underground/internal/input"
)

// FrameTickMsg asks the model to poll the frame mailbox.
type FrameTickMsg time.Time

// holdExpiredMsg fires when a key has not repeated within its hold window.
type holdExpiredMsg struct {
	code input.KeyCode
	seq  uint64
}

// runtimeStoppedMsg is sent when the engine workers exit on their own.
type runtimeStoppedMsg struct{}

// frameTickCmd returns a Bubble Tea command that sends frame ticks at the specified rate.
func frameTickCmd(rate float64) tea.Cmd {
	if rate <= 0 {
		rate = 30
	}
	interval := time.Duration(float64(time.Second) / rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}
