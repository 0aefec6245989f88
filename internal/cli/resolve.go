package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"zigls/internal/zls"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the zls binary for the worktree",
		RunE:  runResolve,
	}
	return cmd
}

func runResolve(cmd *cobra.Command, _ []string) error {
	wt, cfg, err := loadWorktree()
	if err != nil {
		return err
	}

	logf, closeLog := sessionLogf()
	defer closeLog()

	resolver, err := zls.NewResolver(zls.Options{
		Notifier: zls.NotifierFunc(func(phase zls.Phase) {
			if !outputJSON {
				cmd.PrintErrf("%s...\n", phase)
			}
		}),
		Logf: logf,
	})
	if err != nil {
		return err
	}

	result, err := resolver.Resolve(cmd.Context(), wt, cfg)
	if err != nil {
		return err
	}

	if outputJSON {
		return writeResolveJSON(cmd, result)
	}
	writeResolveTable(cmd, result)
	return nil
}

type resolveOutput struct {
	Path    string   `json:"path"`
	Args    []string `json:"args,omitempty"`
	Source  string   `json:"source"`
	Version string   `json:"version,omitempty"`
}

func writeResolveJSON(cmd *cobra.Command, result zls.Result) error {
	out := resolveOutput{
		Path:    result.Binary.Path,
		Args:    result.Binary.Args,
		Source:  string(result.Source),
		Version: result.Version,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func writeResolveTable(cmd *cobra.Command, result zls.Result) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "PATH\t%s\n", result.Binary.Path)
	if len(result.Binary.Args) > 0 {
		fmt.Fprintf(w, "ARGS\t%v\n", result.Binary.Args)
	}
	fmt.Fprintf(w, "SOURCE\t%s\n", result.Source)
	if result.Version != "" {
		fmt.Fprintf(w, "VERSION\t%s\n", result.Version)
	}
	_ = w.Flush()
}
