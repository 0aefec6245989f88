package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const tickInterval = 150 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// tickMsg drives the spinner animation.
type tickMsg time.Time

// InstallModel is a bubbletea model rendering the zls install phases as a
// single animated status line.
type InstallModel struct {
	title string
	phase string
	done  bool
	err   error

	tick int
}

// NewInstallModel creates an install model with the given title.
func NewInstallModel(title string) InstallModel {
	return InstallModel{title: title, phase: "pending"}
}

// Err returns the terminal error, if any.
func (m InstallModel) Err() error {
	return m.err
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init satisfies the tea.Model interface.
func (m InstallModel) Init() tea.Cmd {
	return scheduleTick()
}

// Update satisfies the tea.Model interface.
func (m InstallModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tick++
		if m.done {
			return m, nil
		}
		return m, scheduleTick()

	case PhaseMsg:
		m.phase = msg.Phase
		return m, nil

	case WorkDoneMsg:
		m.done = true
		if m.phase != "error" {
			m.phase = "complete"
		}
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.phase = "error"
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View satisfies the tea.Model interface.
func (m InstallModel) View() string {
	if m.done && m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.title))
	b.WriteString("\n")

	marker := spinnerFrames[m.tick%len(spinnerFrames)]
	if m.done {
		marker = "✓"
	}
	b.WriteString(fmt.Sprintf("%s %s\n", marker, PhaseStyle(m.phase).Render(m.phase)))
	return b.String()
}
