//go:build e2e

package e2e

import (
	"bytes"
	"errors"
	"net/http"
	"os/exec"
	"strings"
	"testing"

	"github.com/xdg/cmdapi/internal/testutil"
)

// cliResult is the outcome of one cmdapi client invocation.
type cliResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runCLI runs the cmdapi binary against the test server.
func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(cmd.Environ(), "CMDAPI_SERVER="+serverURL)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := cliResult{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		t.Fatalf("run cmdapi %v: %v", args, err)
	}
	return res
}

// postJSON posts body to path on the test server.
func postJSON(t *testing.T, path, body string) *http.Response {
	t.Helper()

	resp, err := testutil.NoProxyClient().Post(serverURL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}
