// Package task translates generic zig build tasks into debug-build
// templates and debug-launch requests.
package task

import (
	"errors"
	"path/filepath"
	"strings"

	"zigls/internal/platform"
)

// ErrUnsupportedTask reports a task shape the translator does not
// understand at a call site that requires a definite outcome.
var ErrUnsupportedTask = errors.New("unsupported build task")

// TestBinaryName is the conventional name of the compiled-but-not-run test
// executable emitted by a test template.
const TestBinaryName = "zig_test"

// BuildTask is an opaque task description supplied by the host. The
// translator reads it and clones what it needs; the source task is never
// mutated.
type BuildTask struct {
	Command string
	Args    []string
	Cwd     string
	Env     map[string]string
}

// Intent is the recognized shape of a build task.
type Intent int

const (
	IntentUnsupported Intent = iota
	IntentBuildRun
	IntentTestNoExec
)

// rules are evaluated in order; the first match decides the intent. Keeping
// the list explicit makes the unsupported fall-through visible.
var rules = []struct {
	intent  Intent
	matches func(args []string) bool
}{
	{
		intent:  IntentBuildRun,
		matches: func(args []string) bool { return len(args) >= 2 && args[0] == "build" && args[1] == "run" },
	},
	{
		intent:  IntentTestNoExec,
		matches: func(args []string) bool { return len(args) >= 1 && args[0] == "test" },
	},
}

// Classify maps a task's argument vector to an intent. Unsupported is an
// expected outcome, not an error; the caller decides whether it matters.
func Classify(t BuildTask) Intent {
	for _, rule := range rules {
		if rule.matches(t.Args) {
			return rule.intent
		}
	}
	return IntentUnsupported
}

// Template describes a command invocation sufficient to re-run a build
// step under a debugger's build phase.
type Template struct {
	Label   string            `json:"label"`
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
	Cwd     string            `json:"cwd"`
}

// LaunchRequest describes the program a debugger should start once the
// build phase completed.
type LaunchRequest struct {
	Program string            `json:"program"`
	Cwd     string            `json:"cwd"`
	Env     map[string]string `json:"env,omitempty"`
}

// Translator emits templates and launch requests for one platform target.
type Translator struct {
	target platform.Target
}

// New builds a translator for the given target.
func New(target platform.Target) Translator {
	return Translator{target: target}
}

// Scenario derives a build template from the task. ok is false when the
// task shape is not recognized; that is a silent fall-through, not a
// failure.
func (tr Translator) Scenario(t BuildTask) (Template, bool) {
	switch Classify(t) {
	case IntentBuildRun:
		return Template{
			Label:   t.Command + " build",
			Command: t.Command,
			Args:    []string{"build"},
			Env:     cloneEnv(t.Env),
			Cwd:     t.Cwd,
		}, true
	case IntentTestNoExec:
		return Template{
			Label:   t.Command + " test",
			Command: t.Command,
			Args:    tr.testNoExecArgs(t),
			Env:     cloneEnv(t.Env),
			Cwd:     t.Cwd,
		}, true
	default:
		return Template{}, false
	}
}

// Locate derives the launch request for the task. Unlike Scenario, an
// unrecognized task is a typed error here: the caller has committed to
// launching something.
func (tr Translator) Locate(t BuildTask) (LaunchRequest, error) {
	switch Classify(t) {
	case IntentBuildRun:
		return LaunchRequest{
			Program: "zig-out/bin/" + projectName(t.Cwd),
			Cwd:     t.Cwd,
			Env:     cloneEnv(t.Env),
		}, nil
	case IntentTestNoExec:
		return LaunchRequest{
			Program: tr.testBinaryPath(t.Cwd),
			Cwd:     t.Cwd,
			Env:     cloneEnv(t.Env),
		}, nil
	default:
		return LaunchRequest{}, ErrUnsupportedTask
	}
}

// testNoExecArgs re-invokes the original test command with the flags that
// compile the test binary without executing it. On Windows every original
// argument is quoted first; the downstream shell mis-tokenizes them
// otherwise.
func (tr Translator) testNoExecArgs(t BuildTask) []string {
	args := make([]string, 0, len(t.Args)+2)
	if tr.target.OS == platform.Windows {
		for _, arg := range t.Args {
			args = append(args, quote(arg))
		}
		return append(args, "--test-no-exec", "-femit-bin="+quote(tr.testBinaryPath(t.Cwd)))
	}
	args = append(args, t.Args...)
	return append(args, "--test-no-exec", "-femit-bin="+tr.testBinaryPath(t.Cwd))
}

// testBinaryPath is the fixed convention for the emitted test executable.
func (tr Translator) testBinaryPath(cwd string) string {
	if tr.target.OS == platform.Windows {
		return cwd + "\\" + TestBinaryName
	}
	return filepath.ToSlash(cwd) + "/" + TestBinaryName
}

// projectName extracts the final path segment of the working directory,
// normalizing separators first so Windows paths split correctly.
func projectName(cwd string) string {
	normalized := strings.ReplaceAll(cwd, "\\", "/")
	normalized = strings.TrimRight(normalized, "/")
	if idx := strings.LastIndexByte(normalized, '/'); idx >= 0 {
		return normalized[idx+1:]
	}
	return normalized
}

func quote(s string) string {
	return `"` + s + `"`
}

func cloneEnv(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}
