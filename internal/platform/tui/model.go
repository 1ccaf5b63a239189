package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/underground/internal/core"
	"github.com/vovakirdan/underground/internal/engine"
	"github.com/vovakirdan/underground/internal/input"
)

// Options configures the terminal presenter.
type Options struct {
	FrameRate   float64       // How often the mailbox is polled
	Width       int           // Initial terminal width in cells
	Height      int           // Initial terminal height in cells
	InitialHold time.Duration // Hold window before the first auto-repeat
	RepeatHold  time.Duration // Hold window between auto-repeats
}

// Model is the Bubble Tea model presenting a running engine.
type Model struct {
	rt       *engine.Runtime
	screen   *core.Screen
	keys     *KeyMapper
	hold     *holdTracker
	help     help.Model
	helpKeys HelpKeyMap
	opts     Options

	width, height int
	lastSeq       uint64
	drawn         int
	quitting      bool
}

// NewModel creates a presenter for rt. The runtime should already be started.
func NewModel(rt *engine.Runtime, opts Options) Model {
	m := Model{
		rt:       rt,
		keys:     NewKeyMapper(),
		hold:     newHoldTracker(opts.InitialHold, opts.RepeatHold),
		help:     help.New(),
		helpKeys: DefaultHelpKeyMap(),
		opts:     opts,
		width:    max(opts.Width, 1),
		height:   max(opts.Height, 1),
	}
	m.screen = core.NewScreen(m.width, m.viewportRows())
	return m
}

// Init starts the frame tick loop.
func (m Model) Init() tea.Cmd {
	return frameTickCmd(m.opts.FrameRate)
}

// Update handles messages and forwards input to the engine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.send(m.keys.MapMouse(msg)...)
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case FrameTickMsg:
		if batch, ok := m.rt.Frames().TryReceive(); ok {
			m.drawn = Rasterize(batch, m.screen)
			m.lastSeq = batch.Seq
			DrawCursor(m.screen, m.rt.World().Snapshot().CursorRelative)
		}
		return m, frameTickCmd(m.opts.FrameRate)

	case holdExpiredMsg:
		m.send(m.hold.expire(msg)...)
		return m, nil

	case runtimeStoppedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	code, isQuit, ok := m.keys.MapKey(msg)
	if isQuit {
		m.send(m.hold.releaseAll()...)
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.helpKeys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}
	if !ok {
		return m, nil
	}

	events, cmd := m.hold.press(code)
	m.send(events...)
	return m, cmd
}

// layout sizes the screen buffer to the area above the status and help rows
// and reports the new viewport to the engine.
func (m *Model) layout() {
	rows := m.viewportRows()
	m.screen.Resize(max(m.width, 1), rows)
	if m.width > 0 {
		m.send(input.WindowResize{Width: uint32(m.width), Height: uint32(rows)}) //nolint:gosec // terminal sizes are small
	}
}

func (m Model) viewportRows() int {
	m.help.Width = m.width
	chrome := 1 + lipgloss.Height(m.help.View(m.helpKeys))
	return max(m.height-chrome, 1)
}

func (m Model) send(events ...input.Event) {
	for _, ev := range events {
		m.rt.Input().Send(ev)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	status := statusLine(m.rt.World().Snapshot(), m.rt.World().RegularHalfExtent().Y, m.rt.Stats(), m.width)
	m.help.Width = m.width
	return RenderScreen(m.screen) + "\n" + status + "\n" + m.help.View(m.helpKeys)
}

// Run starts the Bubble Tea program presenting rt. It returns when the user
// quits or the engine workers stop.
func Run(rt *engine.Runtime, opts Options) error {
	model := NewModel(rt, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		// Pointer motion is reported even without a pressed button
		tea.WithMouseAllMotion(),
	)

	exited := make(chan struct{})
	defer close(exited)
	go func() {
		select {
		case <-rt.Done():
			p.Send(runtimeStoppedMsg{})
		case <-exited:
		}
	}()

	_, err := p.Run()
	return err
}
