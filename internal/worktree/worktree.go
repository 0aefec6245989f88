package worktree

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// EnvVar is one inherited environment pair. Order is preserved so the
// launched process sees the same environment shape as the shell.
type EnvVar struct {
	Key   string
	Value string
}

// Worktree scopes binary discovery and environment capture to one project
// root.
type Worktree struct {
	root string
	env  []EnvVar
}

// New captures the current process environment for the given root.
func New(root string) *Worktree {
	return NewWithEnv(root, environPairs())
}

// NewWithEnv builds a worktree with an explicit environment snapshot.
func NewWithEnv(root string, env []EnvVar) *Worktree {
	return &Worktree{root: root, env: env}
}

// Root returns the worktree root directory.
func (w *Worktree) Root() string {
	return w.root
}

// ShellEnv returns a copy of the captured environment pairs.
func (w *Worktree) ShellEnv() []EnvVar {
	out := make([]EnvVar, len(w.env))
	copy(out, w.env)
	return out
}

// Which searches the captured PATH for an executable with the given base
// name. A miss is an expected outcome, not an error.
func (w *Worktree) Which(name string) (string, bool) {
	pathVar := w.envValue("PATH")
	if pathVar == "" {
		path, err := exec.LookPath(name)
		if err != nil {
			return "", false
		}
		return path, true
	}

	for _, dir := range filepath.SplitList(pathVar) {
		if dir == "" {
			dir = "."
		}
		for _, candidate := range executableCandidates(filepath.Join(dir, name)) {
			info, err := os.Stat(candidate)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
				continue
			}
			return candidate, true
		}
	}
	return "", false
}

// ZigVersion runs `zig version` against the worktree's zig. It reports
// found=false when zig is absent from PATH or the subcommand fails, which
// callers treat as "no local toolchain" rather than an error.
func (w *Worktree) ZigVersion(ctx context.Context) (string, bool) {
	path, ok := w.Which("zig")
	if !ok {
		return "", false
	}

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, "version")
	output, err := cmd.Output()
	if err != nil {
		return "", false
	}

	version := strings.TrimSpace(string(output))
	if version == "" {
		return "", false
	}
	return version, true
}

func (w *Worktree) envValue(key string) string {
	for _, pair := range w.env {
		if pair.Key == key {
			return pair.Value
		}
	}
	return ""
}

func executableCandidates(base string) []string {
	if runtime.GOOS != "windows" {
		return []string{base}
	}
	exts := strings.Split(os.Getenv("PATHEXT"), ";")
	if len(exts) == 0 || exts[0] == "" {
		exts = []string{".exe", ".bat", ".cmd"}
	}
	candidates := make([]string, 0, len(exts)+1)
	candidates = append(candidates, base)
	for _, ext := range exts {
		candidates = append(candidates, base+strings.ToLower(ext))
	}
	return candidates
}

func environPairs() []EnvVar {
	raw := os.Environ()
	pairs := make([]EnvVar, 0, len(raw))
	for _, entry := range raw {
		if idx := strings.IndexByte(entry, '='); idx >= 0 {
			pairs = append(pairs, EnvVar{Key: entry[:idx], Value: entry[idx+1:]})
		}
	}
	return pairs
}
