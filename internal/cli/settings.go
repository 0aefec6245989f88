package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the effective zls settings passthrough for the worktree",
		RunE:  runSettings,
	}
	return cmd
}

func runSettings(cmd *cobra.Command, _ []string) error {
	_, cfg, err := loadWorktree()
	if err != nil {
		return err
	}

	// The settings block is handed to the language server unmodified; an
	// absent block is an empty object, not null.
	settings := cfg.ZLS.Settings
	if settings == nil {
		settings = map[string]any{}
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
