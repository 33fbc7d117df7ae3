package config

import (
	"os"
	"path/filepath"
)

// GetFocusWorkHome returns FOCUSWORK_HOME or ~/.focuswork default
func GetFocusWorkHome() string {
	home := os.Getenv("FOCUSWORK_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".focuswork"
		}
		return filepath.Join(homeDir, ".focuswork")
	}
	return ExpandPath(home)
}

// GetDBPath returns $FOCUSWORK_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetFocusWorkHome(), "state.db")
}

// GetSettingsPath returns $FOCUSWORK_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetFocusWorkHome(), "settings.json")
}

// GetSessionPath returns $FOCUSWORK_HOME/session.json
func GetSessionPath() string {
	return filepath.Join(GetFocusWorkHome(), "session.json")
}

// GetLockPath returns $FOCUSWORK_HOME/tracker.lock
func GetLockPath() string {
	return filepath.Join(GetFocusWorkHome(), "tracker.lock")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
