package clog

import (
	"io"
	"log"
	"os"
)

// std is the global logger instance used by package-level functions.
var std = NewLogger()

// Options controls global logger setup.
type Options struct {
	// Path is the log file. Empty disables file logging.
	Path string
	// Level is the minimum level written to any output.
	Level Level
	// Server enables server-mode console output.
	Server bool
}

// Configure sets up the global logger. The opened log file, if any, stays
// owned by the logger until Close.
func Configure(opts Options) error {
	std.SetLevel(opts.Level)
	std.SetServerMode(opts.Server)

	if opts.Path != "" {
		f, err := OpenLogFile(opts.Path)
		if err != nil {
			return err
		}
		std.SetFileOutput(f)
	}
	return nil
}

// SetLevel sets the minimum log level for the global logger.
func SetLevel(level Level) {
	std.SetLevel(level)
}

// SetFileOutput sets the file writer for the global logger.
func SetFileOutput(w io.Writer) {
	std.SetFileOutput(w)
}

// SetErrOutput sets the console writer for the global logger.
func SetErrOutput(w io.Writer) {
	std.SetErrOutput(w)
}

// SetServerMode enables or disables server mode for the global logger.
func SetServerMode(server bool) {
	std.SetServerMode(server)
}

// Enabled reports whether messages at level would be written.
func Enabled(level Level) bool {
	return level >= std.Level()
}

// Debug logs a debug message using the global logger.
func Debug(format string, args ...any) {
	std.Debug(format, args...)
}

// Info logs an informational message using the global logger.
func Info(format string, args ...any) {
	std.Info(format, args...)
}

// Warn logs a warning message using the global logger.
func Warn(format string, args ...any) {
	std.Warn(format, args...)
}

// Error logs an error message using the global logger.
func Error(format string, args ...any) {
	std.Error(format, args...)
}

// Close closes the file writer if it implements io.Closer.
func Close() error {
	std.mu.Lock()
	defer std.mu.Unlock()

	if closer, ok := std.fileWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Reset resets the global logger to default state.
// This is primarily useful for testing.
func Reset() {
	std = NewLogger()
}

// Discard configures the global logger to discard all output.
func Discard() {
	std.SetFileOutput(io.Discard)
	std.SetErrOutput(io.Discard)
}

// TestLogger returns a debug-level logger that writes to w.
func TestLogger(w io.Writer) *Logger {
	l := NewLogger()
	l.SetFileOutput(w)
	l.SetErrOutput(nil)
	l.SetLevel(LevelDebug)
	return l
}

// ReplaceGlobal replaces the global logger and returns the previous one.
// Caller should restore the original logger after the test.
func ReplaceGlobal(l *Logger) *Logger {
	old := std
	std = l
	return old
}

// StdLogger returns a standard library logger that writes to clog at level.
// Used for http.Server.ErrorLog.
func StdLogger(level Level) *log.Logger {
	return log.New(Writer(level), "", 0)
}

// Writer returns an io.Writer that writes to clog at the specified level.
func Writer(level Level) io.Writer {
	return &levelWriter{level: level}
}

type levelWriter struct {
	level Level
}

func (w *levelWriter) Write(p []byte) (n int, err error) {
	msg := string(p)
	// log functions add their own newline
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}

	switch w.level {
	case LevelDebug:
		Debug("%s", msg)
	case LevelInfo:
		Info("%s", msg)
	case LevelWarn:
		Warn("%s", msg)
	case LevelError:
		Error("%s", msg)
	}
	return len(p), nil
}

func init() {
	std.SetErrOutput(os.Stderr)
}
