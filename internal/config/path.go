// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath is where the sqlite database lives unless configured
// otherwise.
func DefaultDatabasePath() string {
	return ExpandPath("$HOME/.local/share/cashfall/cashfall.db")
}

// DefaultSessionTokenPath is where the current sign-in token is kept.
func DefaultSessionTokenPath() string {
	return ExpandPath("$HOME/.config/cashfall/session")
}
