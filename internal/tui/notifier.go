package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"zigls/internal/zls"
)

// InstallNotifier adapts bubbletea message sending to the zls.Notifier
// interface so the resolver's fire-and-forget phase notifications drive
// the install display.
type InstallNotifier struct {
	send func(tea.Msg)
}

// NewInstallNotifier constructs a notifier around a send callback.
func NewInstallNotifier(send func(tea.Msg)) *InstallNotifier {
	return &InstallNotifier{send: send}
}

// Notify implements zls.Notifier.
func (n *InstallNotifier) Notify(phase zls.Phase) {
	n.send(PhaseMsg{Phase: string(phase)})
}
