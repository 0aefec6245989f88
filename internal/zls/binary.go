package zls

import "zigls/internal/worktree"

// BinaryName is the executable base name of the language server.
const BinaryName = "zls"

// Source records how a binary was produced.
type Source string

const (
	SourceOverride Source = "override"
	SourcePath     Source = "path"
	SourceCache    Source = "cache"
	SourceDownload Source = "download"
)

// Binary is a resolved language-server command. It is handed to the process
// launcher verbatim; zigls does not interpret args or environment further.
type Binary struct {
	Path string
	Args []string
	Env  []worktree.EnvVar
}

// Result pairs a resolved binary with provenance details.
type Result struct {
	Binary  Binary
	Source  Source
	Version string
}

// Phase is an installation-status notification. Notifications are
// fire-and-forget; the resolver never consults a return value.
type Phase string

const (
	PhaseChecking    Phase = "checking"
	PhaseDownloading Phase = "downloading"
)

// Notifier receives installation-status notifications.
type Notifier interface {
	Notify(phase Phase)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Phase)

// Notify implements Notifier.
func (f NotifierFunc) Notify(phase Phase) { f(phase) }

type nopNotifier struct{}

func (nopNotifier) Notify(Phase) {}

// NopNotifier discards all notifications.
var NopNotifier Notifier = nopNotifier{}
