package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDefault creates a commented default configuration file at path.
// An empty path means Path(). If the file already exists it returns
// os.ErrExist unless overwrite is set. The parent directory is created if
// needed; the file is written with 0600 permissions.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		path = Path()
	}

	_, err := os.Stat(path)
	if err == nil && !overwrite {
		return path, fmt.Errorf("config file %s: %w", path, os.ErrExist)
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return path, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return path, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o600); err != nil {
		return path, fmt.Errorf("write default config: %w", err)
	}
	return path, nil
}
