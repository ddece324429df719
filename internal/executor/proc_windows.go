//go:build windows

package executor

import (
	"os"
	"os/exec"
)

// DefaultShell is the interpreter used when none is configured.
const DefaultShell = "cmd.exe"

const shellFlag = "/C"

// isolateProcessGroup keeps the default cancellation, which kills the
// child process.
func isolateProcessGroup(_ *exec.Cmd) {}

func exitStatus(ps *os.ProcessState) int {
	return ps.ExitCode()
}
