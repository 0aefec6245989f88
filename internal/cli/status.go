package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"zigls/internal/paths"
	"zigls/internal/platform"
	"zigls/internal/zls"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show toolchain and zls resolution state without downloading",
		RunE:  runStatus,
	}
	return cmd
}

type statusOutput struct {
	Target       string   `json:"target"`
	ZigVersion   string   `json:"zig_version,omitempty"`
	Override     string   `json:"override,omitempty"`
	PathBinary   string   `json:"path_binary,omitempty"`
	InstallRoot  string   `json:"install_root"`
	InstalledZLS []string `json:"installed,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	wt, cfg, err := loadWorktree()
	if err != nil {
		return err
	}

	target, err := platform.Current()
	if err != nil {
		return err
	}

	root, err := paths.InstallRoot()
	if err != nil {
		return err
	}

	installed, err := zls.ListInstalled(root)
	if err != nil {
		return err
	}

	out := statusOutput{
		Target:       target.Token(),
		Override:     cfg.ZLS.Path,
		InstallRoot:  root,
		InstalledZLS: installed,
	}
	if version, ok := wt.ZigVersion(cmd.Context()); ok {
		out.ZigVersion = version
	}
	if path, ok := wt.Which(zls.BinaryName); ok {
		out.PathBinary = path
	}

	if outputJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	writeStatusTable(cmd, out)
	return nil
}

func writeStatusTable(cmd *cobra.Command, out statusOutput) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "TARGET\t%s\n", out.Target)
	if out.ZigVersion != "" {
		fmt.Fprintf(w, "ZIG\t%s\n", out.ZigVersion)
	} else {
		fmt.Fprintf(w, "ZIG\t(not found)\n")
	}
	if out.Override != "" {
		fmt.Fprintf(w, "OVERRIDE\t%s\n", out.Override)
	}
	if out.PathBinary != "" {
		fmt.Fprintf(w, "ZLS (PATH)\t%s\n", out.PathBinary)
	}
	fmt.Fprintf(w, "INSTALL ROOT\t%s\n", out.InstallRoot)
	for _, dir := range out.InstalledZLS {
		fmt.Fprintf(w, "INSTALLED\t%s\n", dir)
	}
	_ = w.Flush()
}
