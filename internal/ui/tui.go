// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program and the volume channels it feeds
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// VolumeChangeMsg carries a volume or mute change from the keyboard
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// Controls holds channels for volume control communication
type Controls struct {
	Changes chan VolumeChangeMsg
	Quit    chan struct{}
}

// NewControls creates a new control handler
func NewControls() *Controls {
	return &Controls{
		Changes: make(chan VolumeChangeMsg, 10),
		Quit:    make(chan struct{}),
	}
}

// send queues a change without blocking the UI; a full queue drops it
func (c *Controls) send(volume int, muted bool) {
	if c == nil {
		return
	}
	select {
	case c.Changes <- VolumeChangeMsg{Volume: volume, Muted: muted}:
	default:
	}
}

func (c *Controls) quit() {
	if c == nil {
		return
	}
	select {
	case <-c.Quit:
	default:
		close(c.Quit)
	}
}

// NewModel creates a new TUI model
func NewModel(file string, volume int, controls *Controls) Model {
	return Model{
		file:     file,
		state:    "starting",
		volume:   volume,
		controls: controls,
	}
}

// Run creates the TUI program; the caller starts it with Run
func Run(file string, volume int, controls *Controls) *tea.Program {
	return tea.NewProgram(NewModel(file, volume, controls), tea.WithAltScreen())
}
