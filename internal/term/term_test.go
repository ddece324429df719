package term

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestPrintf(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Printf("count: %d", 42)

	if buf.String() != "count: 42" {
		t.Errorf("Printf() = %q, want %q", buf.String(), "count: 42")
	}
}

func TestPrintln(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Println("status:", "healthy")

	if buf.String() != "status: healthy\n" {
		t.Errorf("Println() = %q", buf.String())
	}
}

func TestWarnAndError(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	SetErrOutput(&buf)

	Warn("failed to load %s", ".env")
	Error("failed with code %d", 42)

	want := "Warning: failed to load .env\nError: failed with code 42\n"
	if buf.String() != want {
		t.Errorf("stderr = %q, want %q", buf.String(), want)
	}
}

func TestWarnColored(t *testing.T) {
	defer Reset()
	color.NoColor = false
	defer func() { color.NoColor = true }()

	var buf bytes.Buffer
	SetErrOutput(&buf)

	Warn("careful")

	got := buf.String()
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI color codes, got %q", got)
	}
	if !strings.HasSuffix(got, " careful\n") {
		t.Errorf("message should follow the prefix uncolored, got %q", got)
	}
}

func TestPassthrough(t *testing.T) {
	defer Reset()

	var out, errOut bytes.Buffer
	SetOutput(&out)
	SetErrOutput(&errOut)

	Passthrough("hello\n", "no newline")

	if out.String() != "hello\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "hello\n")
	}
	if errOut.String() != "no newline" {
		t.Errorf("stderr = %q, want %q", errOut.String(), "no newline")
	}
}

func TestSilentMode(t *testing.T) {
	defer Reset()

	var stdoutBuf, stderrBuf bytes.Buffer
	SetOutput(&stdoutBuf)
	SetErrOutput(&stderrBuf)
	SetSilent(true)

	Printf("printf")
	Println("println")
	Passthrough("out", "err")
	Warn("warning")
	Error("error")

	if stdoutBuf.Len() > 0 {
		t.Errorf("stdout should be suppressed in silent mode, got: %q", stdoutBuf.String())
	}
	want := "Warning: warning\nError: error\n"
	if stderrBuf.String() != want {
		t.Errorf("stderr = %q, want only Warn and Error output %q", stderrBuf.String(), want)
	}
}

func TestJSON(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetSilent(true)

	if err := JSON(map[string]int{"returnCode": 0}); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	want := "{\n  \"returnCode\": 0\n}\n"
	if buf.String() != want {
		t.Errorf("JSON() = %q, want %q", buf.String(), want)
	}
}
