// Package service implements the command execution service: it validates
// requests, applies defaults, runs the child through an executor and maps
// the outcome to a CommandResult or a typed *Error.
//
// Each call is independent. The only state a Service holds is its
// configuration, so one instance serves any number of concurrent requests.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xdg/cmdapi/internal/audit"
	"github.com/xdg/cmdapi/internal/clog"
	"github.com/xdg/cmdapi/internal/executor"
)

// PlanCommand is the fixed planning invocation. Callers cannot change it.
const PlanCommand = "claude -p"

// Default timeouts in seconds.
const (
	DefaultCommandTimeout = 30
	DefaultPlanTimeout    = 6000000
)

// maxTimeoutSeconds is the largest timeout representable as a
// time.Duration. Larger values are treated as unbounded.
const maxTimeoutSeconds = math.MaxInt64 / int64(time.Second)

// operation carries the per-operation naming used in logs and messages.
type operation struct {
	kind        string // audit/log kind
	timeoutText string // "<subject> timed out after %d seconds"
	errorText   string // "Error executing <subject>: %v"
}

var (
	executeOp = operation{
		kind:        "execute",
		timeoutText: "Command timed out after %d seconds",
		errorText:   "Error executing command: %v",
	}
	planOp = operation{
		kind:        "plan",
		timeoutText: "Planning command timed out after %d seconds",
		errorText:   "Error executing planning command: %v",
	}
)

// Service runs commands on behalf of callers.
type Service struct {
	executor       executor.Executor
	audit          *audit.Logger
	commandTimeout int
	planTimeout    int
}

// Option configures a Service.
type Option func(*Service)

// WithCommandTimeout sets the default timeout, in seconds, for arbitrary
// commands. Non-positive values are ignored.
func WithCommandTimeout(seconds int) Option {
	return func(s *Service) {
		if seconds > 0 {
			s.commandTimeout = seconds
		}
	}
}

// WithPlanTimeout sets the default timeout, in seconds, for the planning
// command. Zero disables the default timeout; negative values are ignored.
func WithPlanTimeout(seconds int) Option {
	return func(s *Service) {
		if seconds >= 0 {
			s.planTimeout = seconds
		}
	}
}

// WithAuditLogger records every execution to l.
func WithAuditLogger(l *audit.Logger) Option {
	return func(s *Service) {
		s.audit = l
	}
}

// New creates a Service that runs commands with exec.
func New(exec executor.Executor, opts ...Option) *Service {
	s := &Service{
		executor:       exec,
		commandTimeout: DefaultCommandTimeout,
		planTimeout:    DefaultPlanTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExecuteCommand runs req.Command through the shell.
//
// A non-zero exit status is a normal result. Errors are *Error with
// KindInvalid (bad request), KindTimeout or KindExecution.
func (s *Service) ExecuteCommand(ctx context.Context, req CommandRequest) (*CommandResult, error) {
	if strings.TrimSpace(req.Command) == "" {
		return nil, invalid("command must not be empty")
	}

	timeout := s.commandTimeout
	if req.Timeout != nil {
		if *req.Timeout <= 0 {
			return nil, invalid(fmt.Sprintf("timeout must be a positive number of seconds, got %d", *req.Timeout))
		}
		timeout = *req.Timeout
	}

	return s.run(ctx, executeOp, req.Command, deref(req.WorkingDirectory), timeout)
}

// ExecutePlan runs PlanCommand in req.ProjectPath.
func (s *Service) ExecutePlan(ctx context.Context, req PlanRequest) (*CommandResult, error) {
	timeout := s.planTimeout
	if req.Timeout != nil {
		if *req.Timeout < 0 {
			return nil, invalid(fmt.Sprintf("timeout must not be negative, got %d", *req.Timeout))
		}
		timeout = *req.Timeout
	}

	return s.run(ctx, planOp, PlanCommand, deref(req.ProjectPath), timeout)
}

func (s *Service) run(ctx context.Context, op operation, command, dir string, timeoutSeconds int) (*CommandResult, error) {
	id := uuid.NewString()
	timeout := toDuration(timeoutSeconds)

	clog.Debug("exec %s: start kind=%s dir=%q timeout=%s cmd=%q", id, op.kind, dir, timeout, command)
	s.logAudit(s.audit.LogStart(id, op.kind, command, dir, timeout))

	res, err := s.executor.Execute(ctx, executor.Request{
		Command: command,
		Dir:     dir,
		Timeout: timeout,
	})
	if err != nil {
		if errors.Is(err, executor.ErrTimeout) {
			clog.Warn("exec %s: %s timed out after %ds", id, op.kind, timeoutSeconds)
			s.logAudit(s.audit.LogTimeout(id, op.kind, command, timeout))
			return nil, &Error{
				Kind:    KindTimeout,
				Message: fmt.Sprintf(op.timeoutText, timeoutSeconds),
				Err:     err,
			}
		}

		clog.Warn("exec %s: %s failed: %v", id, op.kind, err)
		s.logAudit(s.audit.LogError(id, op.kind, command, err.Error()))
		return nil, &Error{
			Kind:    KindExecution,
			Message: fmt.Sprintf(op.errorText, err),
			Err:     err,
		}
	}

	clog.Debug("exec %s: exit=%d ok=%t duration=%s", id, res.ExitCode, res.Success(), res.Duration)
	s.logAudit(s.audit.LogComplete(id, op.kind, command, res.ExitCode, res.Duration))

	return newCommandResult(command, res.Stdout, res.Stderr, res.ExitCode), nil
}

func (s *Service) logAudit(err error) {
	if err != nil {
		clog.Warn("audit: %v", err)
	}
}

// toDuration converts a timeout in seconds; non-positive or oversized
// values mean no timeout.
func toDuration(seconds int) time.Duration {
	if seconds <= 0 || int64(seconds) > maxTimeoutSeconds {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
