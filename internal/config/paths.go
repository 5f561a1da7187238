package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "deskup"

// ConfigDir returns the per-OS directory holding config.toml.
func ConfigDir() (string, error) {
	return platformDir("XDG_CONFIG_HOME", filepath.Join(".config", appName))
}

// DataDir returns the per-OS directory for logs.
func DataDir() (string, error) {
	return platformDir("XDG_DATA_HOME", filepath.Join(".local", "share", appName))
}

// platformDir resolves the app directory for the current OS. On Linux and
// the BSDs xdgVar wins when set, otherwise fallback is joined to $HOME.
func platformDir(xdgVar, fallback string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return filepath.Join(home, "."+appName), nil
	default:
		if xdg := os.Getenv(xdgVar); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return filepath.Join(home, fallback), nil
	}
}
