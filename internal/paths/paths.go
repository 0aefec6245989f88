package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// InstallRoot determines the per-user directory that holds managed zls
// version directories. ZIGLS_DIR overrides the platform default.
func InstallRoot() (string, error) {
	if override, ok := os.LookupEnv("ZIGLS_DIR"); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolve ZIGLS_DIR: %w", err)
		}
		return abs, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "zigls", "bin"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "zigls", "bin"), nil
		}
		return filepath.Join(home, "AppData", "Local", "zigls", "bin"), nil
	default:
		return filepath.Join(home, ".local", "share", "zigls", "bin"), nil
	}
}

// VersionDirName returns the directory name convention for an installed zls
// version. Exactly one such directory should survive after a fresh install.
func VersionDirName(version string) string {
	return "zls-" + version
}

// GlobalDir returns the user-level zigls directory (~/.zigls), creating it
// if needed.
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	dir := filepath.Join(home, ".zigls")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create global dir: %w", err)
	}
	return dir, nil
}

// GlobalLogsDir returns the global logs directory (~/.zigls/logs), creating
// it if needed.
func GlobalLogsDir() (string, error) {
	global, err := GlobalDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(global, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create global logs dir: %w", err)
	}
	return dir, nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
