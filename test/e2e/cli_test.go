//go:build e2e

package e2e

import (
	"strings"
	"testing"
)

func TestCLIExec(t *testing.T) {
	res := runCLI(t, "exec", "echo hello")
	if res.ExitCode != 0 {
		t.Fatalf("exit code = %d, stderr = %s", res.ExitCode, res.Stderr)
	}
	if res.Stdout != "hello\n" {
		t.Errorf("stdout = %q", res.Stdout)
	}
}

func TestCLIExecExitCode(t *testing.T) {
	res := runCLI(t, "exec", "echo fail >&2; exit 7")
	if res.ExitCode != 7 {
		t.Errorf("exit code = %d, want 7", res.ExitCode)
	}
	if res.Stderr != "fail\n" {
		t.Errorf("stderr = %q", res.Stderr)
	}
}

func TestCLIExecTimeout(t *testing.T) {
	res := runCLI(t, "exec", "--timeout", "1", "sleep 5")
	if res.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "timed out after 1 seconds") {
		t.Errorf("stderr = %q", res.Stderr)
	}
}

func TestCLIHealth(t *testing.T) {
	res := runCLI(t, "health")
	if res.ExitCode != 0 {
		t.Fatalf("exit code = %d, stderr = %s", res.ExitCode, res.Stderr)
	}
	if !strings.Contains(res.Stdout, "healthy") {
		t.Errorf("stdout = %q", res.Stdout)
	}
}
