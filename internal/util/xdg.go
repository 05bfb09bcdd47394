package util

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "assistroi"

// GetXDGDataDir returns the XDG data directory for assistroi.
// It respects XDG_DATA_HOME if set, otherwise falls back to ~/.local/share/assistroi
func GetXDGDataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".local", "share", appName), nil
}

// DefaultDatabaseURL returns a local libsql file URL inside the data directory,
// creating the directory if needed.
func DefaultDatabaseURL() (string, error) {
	dir, err := GetXDGDataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return "file:" + filepath.Join(dir, appName+".db"), nil
}
