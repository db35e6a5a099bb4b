// Package filex resolves the per-OS application data directory and the
// sibling files the store keeps next to its database.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "Annoti"

// AppDataDir returns the platform data directory for the application:
// %APPDATA% on Windows, ~/Library/Application Support on macOS, and
// $XDG_DATA_HOME (or ~/.local/share) elsewhere. The directory is not
// created; use EnsureDir for that.
func AppDataDir() string {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = "."
		}
	case "darwin":
		base = filepath.Join(homeDir(), "Library", "Application Support")
	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			base = filepath.Join(homeDir(), ".local", "share")
		}
	}
	return filepath.Join(base, appDirName)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// EnsureDir creates dir (and parents) if missing and returns it.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// DBPath returns the SQLite database file inside dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "data.db")
}

// SettingsPath returns the typed settings document inside dataDir.
func SettingsPath(dataDir string) string {
	return filepath.Join(dataDir, "settings.json")
}

// UISettingsPath returns the opaque UI-settings document inside dataDir.
func UISettingsPath(dataDir string) string {
	return filepath.Join(dataDir, "ui_settings.json")
}

// TypographyPath returns the freeform typography config inside dataDir.
func TypographyPath(dataDir string) string {
	return filepath.Join(dataDir, "typography.yaml")
}
