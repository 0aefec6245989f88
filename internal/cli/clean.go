package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zigls/internal/paths"
	"zigls/internal/zls"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove managed zls installs",
		RunE:  runClean,
	}
	return cmd
}

func runClean(cmd *cobra.Command, _ []string) error {
	root, err := paths.InstallRoot()
	if err != nil {
		return err
	}

	dirs, err := zls.ListInstalled(root)
	if err != nil {
		return err
	}

	var removed []string
	for _, dir := range dirs {
		if err := os.RemoveAll(filepath.Join(root, dir)); err != nil {
			return fmt.Errorf("remove %s: %w", dir, err)
		}
		removed = append(removed, dir)
	}

	if outputJSON {
		data, err := json.MarshalIndent(map[string][]string{"removed": removed}, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(removed) == 0 {
		cmd.Println("nothing to remove")
		return nil
	}
	for _, dir := range removed {
		cmd.Printf("removed %s\n", dir)
	}
	return nil
}
