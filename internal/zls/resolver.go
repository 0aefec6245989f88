package zls

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"zigls/internal/config"
	"zigls/internal/paths"
	"zigls/internal/platform"
	"zigls/internal/worktree"
)

// Options configures a Resolver.
type Options struct {
	// InstallRoot overrides the per-user install directory. Empty selects
	// the platform default (see paths.InstallRoot).
	InstallRoot string
	// HTTPClient is shared by the negotiator and fetcher. Nil selects a
	// default client with a timeout.
	HTTPClient *http.Client
	// Notifier receives installation-status phases. Nil discards them.
	Notifier Notifier
	// Logf receives diagnostics for swallowed errors. Nil discards them.
	Logf func(format string, args ...any)
}

// Resolver locates a zls binary for a worktree: user override first, then
// PATH, then the session cache, then a version-negotiated download. One
// resolver instance is meant to live for a session; its cache can hold one
// binary per zig toolchain version.
type Resolver struct {
	cache       *Cache
	negotiator  *Negotiator
	fetcher     *Fetcher
	notify      Notifier
	installRoot string
}

// NewResolver builds a resolver.
func NewResolver(opts Options) (*Resolver, error) {
	root := opts.InstallRoot
	if root == "" {
		var err error
		root, err = paths.InstallRoot()
		if err != nil {
			return nil, err
		}
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}

	notify := opts.Notifier
	if notify == nil {
		notify = NopNotifier
	}

	fetcher := NewFetcher(client, notify)
	if opts.Logf != nil {
		fetcher.SetLogf(opts.Logf)
	}

	return &Resolver{
		cache:       NewCache(),
		negotiator:  NewNegotiator(client, root),
		fetcher:     fetcher,
		notify:      notify,
		installRoot: root,
	}, nil
}

// InstallRoot returns the directory holding managed version directories.
func (r *Resolver) InstallRoot() string {
	return r.installRoot
}

// Resolve produces a runnable zls command for the worktree. The settings
// override wins unconditionally and skips every other stage, including the
// network.
func (r *Resolver) Resolve(ctx context.Context, wt *worktree.Worktree, cfg config.Settings) (Result, error) {
	target, err := platform.Current()
	if err != nil {
		return Result{}, err
	}

	var env []worktree.EnvVar
	if target.OS != platform.Windows {
		env = wt.ShellEnv()
	}

	args := cfg.ZLS.Args
	if cfg.ZLS.Path != "" {
		return Result{
			Binary: Binary{Path: cfg.ZLS.Path, Args: args, Env: env},
			Source: SourceOverride,
		}, nil
	}

	if path, ok := wt.Which(BinaryName); ok {
		return Result{
			Binary: Binary{Path: path, Args: args, Env: env},
			Source: SourcePath,
		}, nil
	}

	r.notify.Notify(PhaseChecking)

	zigVersion, _ := wt.ZigVersion(ctx)
	zigVersion = strings.TrimSpace(zigVersion)

	if path, ok := r.cache.Get(zigVersion); ok {
		return Result{
			Binary: Binary{Path: path, Args: args, Env: env},
			Source: SourceCache,
		}, nil
	}

	res, err := r.negotiator.Negotiate(ctx, zigVersion, target)
	if err != nil {
		return Result{}, err
	}

	versionDir := filepath.Join(r.installRoot, paths.VersionDirName(res.Version))
	binaryPath := filepath.Join(versionDir, target.ExeName(BinaryName))

	if err := r.fetcher.Fetch(ctx, res, r.installRoot, versionDir, binaryPath, target); err != nil {
		return Result{}, err
	}

	r.cache.Put(zigVersion, binaryPath)

	return Result{
		Binary:  Binary{Path: binaryPath, Args: args, Env: env},
		Source:  SourceDownload,
		Version: res.Version,
	}, nil
}

// ListInstalled returns the version-directory names present under the
// install root, newest name last. A missing root reads as empty.
func ListInstalled(installRoot string) ([]string, error) {
	entries, err := os.ReadDir(installRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), BinaryName+"-") {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
