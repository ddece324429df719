package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/xdg/cmdapi/internal/clog"
)

// Edit opens the configuration file at path in the user's editor, creating
// the default file first if it does not exist. An empty path means Path().
// The editor is determined by the EDITOR environment variable, falling back
// to "vi". After the editor exits the file is loaded; a config with errors
// is reported but not rejected, so the user can fix it later.
func Edit(path string) error {
	if path == "" {
		path = Path()
	}

	if _, err := WriteDefault(path, false); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("create default config: %w", err)
	}

	if err := openEditor(path); err != nil {
		return err
	}

	if _, err := Load(path); err != nil {
		clog.Warn("config has errors after edit: %v", err)
	}
	return nil
}

// openEditor opens the specified file in the user's editor.
func openEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, path) //nolint:gosec // G204: editor chosen by the user
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q failed: %w", editor, err)
	}
	return nil
}
