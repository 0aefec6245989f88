package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the worktree-scoped settings file zigls looks for.
const FileName = "zigls.yaml"

// Settings captures the worktree configuration for zls resolution.
type Settings struct {
	ZLS ZLSSettings `yaml:"zls"`
}

// ZLSSettings configures how the zls binary is located and launched.
//
// Path is a trust-the-user escape hatch: when set, resolution returns it
// verbatim without checking that it exists. Args apply to whichever binary
// resolution produces, even when Path is empty. Settings is an opaque
// configuration block handed to the language server unmodified.
type ZLSSettings struct {
	Path     string         `yaml:"path"`
	Args     []string       `yaml:"args"`
	Settings map[string]any `yaml:"settings"`
}

// Default returns the baseline settings.
func Default() Settings {
	return Settings{}
}

// Load reads the settings file at path. A missing file yields defaults.
func Load(path string) (Settings, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(contents))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// An empty file is a valid, default configuration.
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return cfg, nil
}

// LoadForWorktree reads the settings file from the worktree root.
func LoadForWorktree(root string) (Settings, error) {
	return Load(filepath.Join(root, FileName))
}
