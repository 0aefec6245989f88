package cli

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"zigls/internal/paths"
	"zigls/internal/tui"
	"zigls/internal/zls"
)

var (
	installForce      bool
	installNoProgress bool
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download and install a compatible zls build",
		RunE:  runInstall,
	}

	cmd.Flags().BoolVar(&installForce, "force", false, "Reinstall even if a managed copy exists")
	cmd.Flags().BoolVar(&installNoProgress, "no-progress", false, "Disable the interactive progress display")

	return cmd
}

func runInstall(cmd *cobra.Command, _ []string) error {
	wt, cfg, err := loadWorktree()
	if err != nil {
		return err
	}

	// An explicit override makes installing pointless; resolution would
	// never consult the managed copy.
	if cfg.ZLS.Path != "" {
		cmd.Printf("settings override %s is in effect; nothing to install\n", cfg.ZLS.Path)
		return nil
	}

	if installForce {
		if err := removeInstalled(); err != nil {
			return err
		}
	}

	mode := tui.DetectMode(cmd.OutOrStdout(), installNoProgress, outputJSON)
	if mode != tui.ModeTUI {
		return runResolve(cmd, nil)
	}

	logf, closeLog := sessionLogf()
	defer closeLog()

	var result zls.Result
	model := tui.NewInstallModel("Installing zls")
	err = tui.RunWithWork(cmd.OutOrStdout(), model, func(send func(tea.Msg)) {
		resolver, rerr := zls.NewResolver(zls.Options{
			Notifier: tui.NewInstallNotifier(send),
			Logf:     logf,
		})
		if rerr != nil {
			send(tui.ErrorMsg{Err: rerr})
			return
		}
		result, rerr = resolver.Resolve(cmd.Context(), wt, cfg)
		if rerr != nil {
			send(tui.ErrorMsg{Err: rerr})
		}
	})
	if err != nil {
		return err
	}

	writeResolveTable(cmd, result)
	return nil
}

func removeInstalled() error {
	root, err := paths.InstallRoot()
	if err != nil {
		return err
	}
	dirs, err := zls.ListInstalled(root)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := os.RemoveAll(filepath.Join(root, dir)); err != nil {
			return err
		}
	}
	return nil
}
