//go:build !windows

package testutil

import (
	"os/exec"
	"testing"
)

func TestInstallFakeCommand(t *testing.T) {
	path := InstallFakeCommand(t, "fake-tool", `echo "fake $*"`)

	found, err := exec.LookPath("fake-tool")
	if err != nil {
		t.Fatalf("LookPath: %v", err)
	}
	if found != path {
		t.Errorf("LookPath = %q, want %q", found, path)
	}

	out, err := exec.Command("fake-tool", "a", "b").Output()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if string(out) != "fake a b\n" {
		t.Errorf("output = %q, want %q", out, "fake a b\n")
	}
}
