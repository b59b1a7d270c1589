// ABOUTME: Bubbletea model for the playback TUI
// ABOUTME: Defines playback state, key handling and rendering
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Source
	file       string
	codec      string
	sampleRate int
	channels   int

	// Playback
	state    string
	position uint64
	volume   int
	muted    bool

	controls *Controls

	// Dimensions
	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderPosition()
	s += m.renderControls()
	s += m.renderHelp()

	return s
}

// renderHeader renders the file and stream format
func (m Model) renderHeader() string {
	return fmt.Sprintf(`┌─ SWF Sound Player ───────────────────────────────────┐
│ File:   %-44s │
│ Format: %-44s │
├──────────────────────────────────────────────────────┤
`, truncate(m.file, 44), truncate(m.formatLine(), 44))
}

func (m Model) formatLine() string {
	if m.codec == "" {
		return "(unknown)"
	}
	return fmt.Sprintf("%s %dHz %s", m.codec, m.sampleRate, channelName(m.channels))
}

// renderPosition renders playback state and position
func (m Model) renderPosition() string {
	return fmt.Sprintf("│ State:    %-42s │\n"+
		"│ Position: %-42s │\n",
		m.state, formatPosition(m.position, m.sampleRate))
}

// renderControls renders volume status
func (m Model) renderControls() string {
	muteText := ""
	if m.muted {
		muteText = " (muted)"
	}

	volume := fmt.Sprintf("[%s] %d%%%s", renderBar(m.volume, 100, 10), m.volume, muteText)
	return fmt.Sprintf("│ Volume:   %-42s │\n", volume)
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `├──────────────────────────────────────────────────────┤
│ ↑/↓:Volume  m:Mute  q:Quit                           │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.controls.quit()
		return m, tea.Quit
	case "up":
		if m.volume < 100 {
			m.volume += 5
			if m.volume > 100 {
				m.volume = 100
			}
		}
		m.controls.send(m.volume, m.muted)
	case "down":
		if m.volume > 0 {
			m.volume -= 5
			if m.volume < 0 {
				m.volume = 0
			}
		}
		m.controls.send(m.volume, m.muted)
	case "m":
		m.muted = !m.muted
		m.controls.send(m.volume, m.muted)
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Codec != "" {
		m.codec = msg.Codec
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
	}
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.Position != 0 {
		m.position = msg.Position
	}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Codec      string
	SampleRate int
	Channels   int
	State      string
	Position   uint64
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return "Stereo"
}

// formatPosition renders a frame position as m:ss.cc plus the raw frame count
func formatPosition(frames uint64, sampleRate int) string {
	if sampleRate <= 0 {
		return fmt.Sprintf("frame %d", frames)
	}
	centis := frames * 100 / uint64(sampleRate)
	return fmt.Sprintf("%d:%02d.%02d (frame %d)", centis/6000, centis/100%60, centis%100, frames)
}
