package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigDirName = "clipctl"
	defaultConfigFile    = "config.yaml"
	defaultSessionFile   = "session.json"
)

func DefaultConfigPath() string {
	if env := os.Getenv("CLIPCTL_CONFIG"); env != "" {
		return env
	}
	base, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(base, defaultConfigDirName, defaultConfigFile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".clipctl", defaultConfigFile)
}

// DefaultSessionPath is where the file token-storage backend keeps the
// session credential when the OS keychain is unavailable.
func DefaultSessionPath() string {
	base, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(base, defaultConfigDirName, defaultSessionFile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".clipctl", defaultSessionFile)
}

// DefaultClipsDir is the capture daemon's output directory, used by the
// clip resolver when clips-dir is not set in the config.
func DefaultClipsDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Videos", "clipshare")
}
