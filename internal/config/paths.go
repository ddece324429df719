package config

import (
	"fmt"
	"os"

	"github.com/xdg/cmdapi/internal/pathutil"
)

// Dir returns the cmdapi configuration directory path.
// By default, this is ~/.config/cmdapi/. If the XDG_CONFIG_HOME
// environment variable is set, it uses $XDG_CONFIG_HOME/cmdapi/ instead.
// The returned path always has a trailing slash.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = "~/.config"
	}
	return pathutil.ExpandHome(base) + "/cmdapi/"
}

// EnsureDir creates the configuration directory if it doesn't exist,
// with user-only permissions.
func EnsureDir() error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return nil
}

// Path returns the full path to the default configuration file.
func Path() string {
	return Dir() + "config.yaml"
}
