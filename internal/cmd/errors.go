package cmd

import "fmt"

// ExitCodeError makes the process exit with Code without printing an error.
// It is used to propagate a remote command's exit status.
type ExitCodeError struct {
	Code int
}

// NewExitCodeError creates an ExitCodeError with the given code.
func NewExitCodeError(code int) *ExitCodeError {
	return &ExitCodeError{Code: code}
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// exitCodeFor maps a remote return code to a local process exit code.
// Negative codes report a signal and map to 128+signal as a shell would.
// Codes outside 1-255 become 1 so that failure is never reported as 0.
func exitCodeFor(returnCode int) int {
	code := returnCode
	if code < 0 {
		code = 128 - code
	}
	if code < 1 || code > 255 {
		return 1
	}
	return code
}
