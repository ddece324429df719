package executor

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout matches any *TimeoutError via errors.Is.
var ErrTimeout = errors.New("command timed out")

// ErrInvalidText is returned when captured output is not valid UTF-8.
var ErrInvalidText = errors.New("output is not valid UTF-8 text")

// TimeoutError reports that a child was killed because it outlived its
// timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command timed out after %s", e.Timeout)
}

// Is makes errors.Is(err, ErrTimeout) true for any *TimeoutError.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// ExecError reports a failure to set up, run, or decode a command.
type ExecError struct {
	// Op is the failing step: "chdir", "start", "wait", "decode stdout" or
	// "decode stderr".
	Op  string
	Err error
}

func (e *ExecError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
