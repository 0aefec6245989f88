package tui

// PhaseMsg advances the install display to a new phase.
type PhaseMsg struct {
	Phase string
}

// WorkDoneMsg signals that all background work has completed.
type WorkDoneMsg struct{}

// ErrorMsg signals a fatal error; the TUI should quit.
type ErrorMsg struct {
	Err error
}
