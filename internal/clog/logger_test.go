package clog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger()
	l.SetFileOutput(&buf)
	l.SetErrOutput(nil)
	l.SetLevel(LevelDebug)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()
	for _, want := range []string{
		"[DEBUG] debug message",
		"[INFO] info message",
		"[WARN] warn message",
		"[ERROR] error message",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger()
	l.SetFileOutput(&buf)
	l.SetErrOutput(nil)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("debug/info should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "[WARN] warn message") {
		t.Errorf("expected warn message in output, got: %s", output)
	}
}

func TestLogger_CLIMode(t *testing.T) {
	var fileBuf, errBuf bytes.Buffer
	l := NewLogger()
	l.SetFileOutput(&fileBuf)
	l.SetErrOutput(&errBuf)

	l.Info("request served")
	l.Warn("slow child")

	if !strings.Contains(fileBuf.String(), "request served") {
		t.Errorf("expected info in file output")
	}
	if strings.Contains(errBuf.String(), "request served") {
		t.Errorf("CLI mode should not write info to stderr, got: %s", errBuf.String())
	}
	if got := errBuf.String(); got != "[WARN] slow child\n" {
		t.Errorf("stderr = %q, want untimestamped warn line", got)
	}
}

func TestLogger_ServerMode(t *testing.T) {
	var errBuf bytes.Buffer
	l := NewLogger()
	l.SetErrOutput(&errBuf)
	l.SetServerMode(true)

	l.Debug("hidden")
	l.Info("listening on 0.0.0.0:8000")

	output := errBuf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("debug should still be filtered at info level, got: %s", output)
	}
	if !strings.Contains(output, "[INFO] listening on 0.0.0.0:8000") {
		t.Errorf("expected info on console in server mode, got: %s", output)
	}
	if !strings.Contains(output, "Z [INFO]") {
		t.Errorf("expected timestamped console line, got: %s", output)
	}
}

func TestLogger_FormatWithArgs(t *testing.T) {
	var buf bytes.Buffer
	l := TestLogger(&buf)

	l.Info("count: %d, name: %s", 42, "test")

	if !strings.Contains(buf.String(), "count: 42, name: test") {
		t.Errorf("expected formatted message, got: %s", buf.String())
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "test.log")

	for _, entry := range []string{"first entry\n", "second entry\n"} {
		f, err := OpenLogFile(path)
		if err != nil {
			t.Fatalf("OpenLogFile() error = %v", err)
		}
		if _, err := f.WriteString(entry); err != nil {
			t.Fatalf("WriteString() error = %v", err)
		}
		_ = f.Close()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "first entry\nsecond entry\n" {
		t.Errorf("expected appended entries, got: %q", content)
	}
}
