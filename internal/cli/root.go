package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zigls/internal/config"
	"zigls/internal/logx"
	"zigls/internal/worktree"
)

var (
	worktreeDir string
	outputJSON  bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zigls",
		Short: "Zig language server provisioner",
	}

	cmd.PersistentFlags().StringVar(&worktreeDir, "worktree", "", "Path to the worktree directory")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")

	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newScenarioCmd())
	cmd.AddCommand(newLaunchCmd())
	cmd.AddCommand(newSettingsCmd())

	return cmd
}

// sessionLogf opens a timestamped session log for swallowed-error
// diagnostics. Logging is best-effort: when the log cannot be opened the
// diagnostics are simply discarded.
func sessionLogf() (func(format string, args ...any), func()) {
	logger, closer, err := logx.New()
	if err != nil {
		return nil, func() {}
	}
	return logger.Printf, func() { _ = closer.Close() }
}

// loadWorktree resolves the worktree root from the --worktree flag or the
// current directory and loads its settings file.
func loadWorktree() (*worktree.Worktree, config.Settings, error) {
	root := worktreeDir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, config.Settings{}, fmt.Errorf("resolve worktree root: %w", err)
		}
		root = cwd
	}

	cfg, err := config.LoadForWorktree(root)
	if err != nil {
		return nil, config.Settings{}, err
	}
	return worktree.New(root), cfg, nil
}
