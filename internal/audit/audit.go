// Package audit writes one key=value line per execution event.
//
// Format:
//
//	2024-01-15T14:32:05Z EXEC START id=4c1e... kind=execute cmd="make test" dir="/srv/app" timeout=30s
//	2024-01-15T14:32:07Z EXEC COMPLETE id=4c1e... kind=execute cmd="make test" exit=0 duration=2.1s
package audit

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

// EventType represents the type of execution event.
type EventType string

// Event types, in the order they occur for one execution.
const (
	EventStart    EventType = "START"
	EventComplete EventType = "COMPLETE"
	EventTimeout  EventType = "TIMEOUT"
	EventError    EventType = "ERROR"
)

// Event is a single audit log entry.
type Event struct {
	Timestamp time.Time
	Type      EventType

	// ID correlates the START line with its outcome.
	ID string

	// Kind is the operation: "execute" or "plan".
	Kind string

	Cmd string

	// Dir is the working directory (START only; omitted when inherited).
	Dir string

	// Timeout is the wait budget (START and TIMEOUT; omitted when unbounded).
	Timeout time.Duration

	// ExitCode and Duration are set for COMPLETE.
	ExitCode int
	Duration time.Duration

	// Reason is set for ERROR.
	Reason string
}

// Format returns the log entry as a single line without trailing newline.
func (e *Event) Format() string {
	var b strings.Builder

	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" EXEC ")
	b.WriteString(string(e.Type))
	b.WriteString(" id=")
	b.WriteString(e.ID)
	b.WriteString(" kind=")
	b.WriteString(e.Kind)
	b.WriteString(" cmd=")
	b.WriteString(quoteValue(e.Cmd))

	switch e.Type {
	case EventStart:
		writeOptionalField(&b, "dir", e.Dir)
		if e.Timeout > 0 {
			b.WriteString(" timeout=")
			b.WriteString(e.Timeout.String())
		}
	case EventComplete:
		b.WriteString(" exit=")
		b.WriteString(strconv.Itoa(e.ExitCode))
		b.WriteString(" duration=")
		b.WriteString(formatDuration(e.Duration))
	case EventTimeout:
		b.WriteString(" timeout=")
		b.WriteString(e.Timeout.String())
	case EventError:
		writeOptionalField(&b, "reason", e.Reason)
	}

	return b.String()
}

// writeOptionalField appends " key=quoted_value" to the builder if value is non-empty.
func writeOptionalField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(quoteValue(value))
}

func quoteValue(s string) string {
	return strconv.Quote(s)
}

// formatDuration formats a duration as a human-readable string (e.g., "2.3s", "1m30s").
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

// Logger writes audit events to an io.Writer. A nil *Logger is valid and
// discards everything.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewLogger creates a new audit logger that writes to the given writer.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

// Log writes an event to the audit log.
func (l *Logger) Log(e *Event) error {
	if l == nil || l.w == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = l.now()
	}
	if _, err := io.WriteString(l.w, e.Format()+"\n"); err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return nil
}

// LogStart logs an EXEC START event.
func (l *Logger) LogStart(id, kind, cmd, dir string, timeout time.Duration) error {
	return l.Log(&Event{Type: EventStart, ID: id, Kind: kind, Cmd: cmd, Dir: dir, Timeout: timeout})
}

// LogComplete logs an EXEC COMPLETE event.
func (l *Logger) LogComplete(id, kind, cmd string, exitCode int, duration time.Duration) error {
	return l.Log(&Event{Type: EventComplete, ID: id, Kind: kind, Cmd: cmd, ExitCode: exitCode, Duration: duration})
}

// LogTimeout logs an EXEC TIMEOUT event.
func (l *Logger) LogTimeout(id, kind, cmd string, timeout time.Duration) error {
	return l.Log(&Event{Type: EventTimeout, ID: id, Kind: kind, Cmd: cmd, Timeout: timeout})
}

// LogError logs an EXEC ERROR event.
func (l *Logger) LogError(id, kind, cmd, reason string) error {
	return l.Log(&Event{Type: EventError, ID: id, Kind: kind, Cmd: cmd, Reason: reason})
}
