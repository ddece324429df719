package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
	"unicode/utf8"

	"github.com/xdg/cmdapi/internal/pathutil"
)

// DefaultWaitDelay bounds how long Execute keeps reading output after the
// child has exited or been killed. Orphaned grandchildren can hold the
// output pipes open indefinitely.
const DefaultWaitDelay = 2 * time.Second

// ShellExecutor runs commands through a shell using os/exec.
type ShellExecutor struct {
	// Shell is the interpreter path. Empty uses DefaultShell.
	Shell string

	// ShellArgs are passed to Shell before the command flag
	// (e.g., "--noprofile" for bash).
	ShellArgs []string

	// WaitDelay overrides DefaultWaitDelay when positive.
	WaitDelay time.Duration
}

// NewShellExecutor creates a ShellExecutor using the given shell.
// An empty shell selects the platform default.
func NewShellExecutor(shell string) *ShellExecutor {
	return &ShellExecutor{Shell: shell}
}

// Execute runs req.Command through the shell and captures its output.
//
// The child runs in its own process group; on timeout the whole group is
// killed so that nothing spawned by the command keeps running. Output is
// returned as text and must be valid UTF-8.
func (e *ShellExecutor) Execute(ctx context.Context, req Request) (*Result, error) {
	if req.Dir != "" {
		if err := pathutil.CheckDir(req.Dir); err != nil {
			return nil, &ExecError{Op: "chdir", Err: err}
		}
	}

	runCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	shell, args := e.argv(req.Command)
	cmd := exec.CommandContext(runCtx, shell, args...)
	cmd.Dir = req.Dir
	cmd.WaitDelay = e.waitDelay()
	isolateProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &ExecError{Op: "start", Err: err}
	}
	err := cmd.Wait()
	elapsed := time.Since(start)

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case req.Timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
			return nil, &TimeoutError{Timeout: req.Timeout}
		case ctx.Err() != nil:
			return nil, &ExecError{Op: "wait", Err: ctx.Err()}
		case errors.As(err, &exitErr):
			exitCode = exitStatus(exitErr.ProcessState)
		case errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil:
			// The child exited but something it spawned kept the pipes open.
			exitCode = exitStatus(cmd.ProcessState)
		default:
			return nil, &ExecError{Op: "wait", Err: err}
		}
	}

	if !utf8.Valid(stdout.Bytes()) {
		return nil, &ExecError{Op: "decode stdout", Err: ErrInvalidText}
	}
	if !utf8.Valid(stderr.Bytes()) {
		return nil, &ExecError{Op: "decode stderr", Err: ErrInvalidText}
	}

	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
		Duration: elapsed,
	}, nil
}

// argv returns the interpreter and its arguments for command.
func (e *ShellExecutor) argv(command string) (string, []string) {
	shell := e.Shell
	if shell == "" {
		shell = DefaultShell
	}
	args := make([]string, 0, len(e.ShellArgs)+2)
	args = append(args, e.ShellArgs...)
	return shell, append(args, shellFlag, command)
}

func (e *ShellExecutor) waitDelay() time.Duration {
	if e.WaitDelay > 0 {
		return e.WaitDelay
	}
	return DefaultWaitDelay
}
