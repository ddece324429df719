package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// InstallFakeCommand writes an executable shell script called name into a
// temporary directory and prepends that directory to PATH for the duration
// of the test. The script body runs under /bin/sh.
func InstallFakeCommand(t *testing.T, name, body string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + strings.TrimSpace(body) + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil { //nolint:gosec // G306: test fixture must be executable
		t.Fatalf("write fake %s: %v", name, err)
	}

	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return path
}
