// Package api serves the command execution service over HTTP.
//
// Routes:
//
//	GET  /             fixed status message
//	GET  /health       fixed health payload
//	POST /execute      run an arbitrary shell command
//	POST /claude-plan  run the planning command
//
// Anyone who can reach the listener can run arbitrary commands with the
// server's privileges. Bind to a trusted interface or put an authenticating
// proxy in front.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xdg/cmdapi/internal/clog"
	"github.com/xdg/cmdapi/internal/service"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "0.0.0.0:8000"

// Default limits for the HTTP server.
const (
	DefaultReadHeaderTimeout = 30 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultMaxRequestBytes   = 1 << 20
)

// Runner executes the two command operations. *service.Service implements it.
type Runner interface {
	ExecuteCommand(ctx context.Context, req service.CommandRequest) (*service.CommandResult, error)
	ExecutePlan(ctx context.Context, req service.PlanRequest) (*service.CommandResult, error)
}

// Server is the HTTP front end for a Runner.
type Server struct {
	// Addr is the address to listen on (e.g., "0.0.0.0:8000").
	Addr string

	// Runner executes commands.
	Runner Runner

	// ReadHeaderTimeout limits how long a client may take to send headers.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown in Run. In-flight requests
	// still running after it elapses are abandoned.
	ShutdownTimeout time.Duration

	// MaxRequestBytes caps request bodies.
	MaxRequestBytes int64

	server   *http.Server
	listener net.Listener
	serveErr chan error
	mu       sync.Mutex
	running  bool
}

// NewServer creates a server for runner listening on addr.
// An empty addr uses DefaultAddr.
func NewServer(addr string, runner Runner) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		Addr:              addr,
		Runner:            runner,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
		MaxRequestBytes:   DefaultMaxRequestBytes,
	}
}

// Start begins accepting connections.
// Returns an error if the server is already running or fails to listen.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	listener, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr, err)
	}

	s.listener = listener
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.ReadHeaderTimeout,
		ErrorLog:          clog.StdLogger(clog.LevelWarn),
	}
	s.serveErr = make(chan error, 1)
	s.running = true

	srv := s.server
	errCh := s.serveErr
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	clog.Info("listening on %s", listener.Addr())
	return nil
}

// Stop gracefully shuts down the server, waiting for in-flight requests
// until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	return s.server.Shutdown(ctx)
}

// Run starts the server and blocks until ctx is canceled or the server
// fails. On cancellation it shuts down within ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	s.mu.Lock()
	errCh := s.serveErr
	s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		// Serve returning on its own, e.g. after an external Stop, ends Run.
		defer cancel()
		if err, ok := <-errCh; ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		clog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout())
		defer cancel()
		if err := s.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// ListenAddr returns the actual address the server is listening on.
// Returns empty string if the server has not been started.
func (s *Server) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.ShutdownTimeout > 0 {
		return s.ShutdownTimeout
	}
	return DefaultShutdownTimeout
}
