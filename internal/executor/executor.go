// Package executor runs shell commands as child processes and captures
// their output.
//
// Commands are passed verbatim to a shell (sh -c on Unix), so pipes,
// redirection and chaining work as typed. No allow-listing or sandboxing is
// applied: whoever can reach an Executor can run anything with the
// privileges of the current process.
package executor

import (
	"context"
	"time"
)

// Executor runs a single command to completion.
type Executor interface {
	// Execute runs req and blocks until the child exits, fails, or
	// req.Timeout elapses. A non-zero exit status is not an error.
	Execute(ctx context.Context, req Request) (*Result, error)
}

// Request describes one command invocation.
type Request struct {
	// Command is the shell command line.
	Command string
	// Dir is the working directory. Empty inherits the current directory.
	Dir string
	// Timeout bounds the wait for the child. Zero means no timeout.
	Timeout time.Duration
}

// Result is the captured outcome of a command that ran to completion.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Success reports whether the command exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}
