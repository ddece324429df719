package cmd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xdg/cmdapi/internal/api"
	"github.com/xdg/cmdapi/internal/audit"
	"github.com/xdg/cmdapi/internal/clog"
	"github.com/xdg/cmdapi/internal/config"
	"github.com/xdg/cmdapi/internal/executor"
	"github.com/xdg/cmdapi/internal/pathutil"
	"github.com/xdg/cmdapi/internal/service"
	"github.com/xdg/cmdapi/internal/version"
)

var (
	serveHost  string
	servePort  int
	serveDebug bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Long: `Run the HTTP API server until interrupted (SIGINT/SIGTERM).

Routes:
  GET  /             status message
  GET  /health       health check
  POST /execute      run a shell command
  POST /claude-plan  run "claude -p"

Settings come from the config file, then CMDAPI_* environment variables
(a .env file in the current directory is loaded first), then flags.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "interface to bind (default from config, 0.0.0.0)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config, 8000)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "log at debug level")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}

	level := clog.ParseLevel(cfg.Log.Level)
	if serveDebug {
		level = clog.LevelDebug
	}
	if err := clog.Configure(clog.Options{Path: cfg.Log.File, Level: level, Server: true}); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = clog.Close() }()
	clog.Info("cmdapi %s", version.String())

	var auditLogger *audit.Logger
	if cfg.Log.AuditFile != "" {
		f, err := clog.OpenLogFile(cfg.Log.AuditFile)
		if err != nil {
			return fmt.Errorf("failed to open audit log: %w", err)
		}
		defer func() { _ = f.Close() }()
		auditLogger = audit.NewLogger(f)
		clog.Info("audit log: %s", cfg.Log.AuditFile)
	}

	server, err := newServer(cfg, auditLogger)
	if err != nil {
		return err
	}
	if !isLoopback(cfg.Server.Host) {
		clog.Warn("binding %s: any client that can reach it can run commands", server.Addr)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		return err
	}
	clog.Info("server stopped")
	return nil
}

// loadServeConfig loads the config file and applies serve flags on top.
func loadServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// newServer wires the executor, service and HTTP server from cfg.
func newServer(cfg *config.Config, auditLogger *audit.Logger) (*api.Server, error) {
	shell, shellArgs, err := cfg.Execute.ShellArgv()
	if err != nil {
		return nil, fmt.Errorf("invalid shell: %w", err)
	}
	exec := executor.NewShellExecutor(pathutil.ExpandHome(shell))
	exec.ShellArgs = shellArgs
	exec.WaitDelay = cfg.Execute.WaitDelayDuration()

	svc := service.New(exec,
		service.WithCommandTimeout(cfg.Execute.DefaultTimeout),
		service.WithPlanTimeout(cfg.Plan.DefaultTimeout),
		service.WithAuditLogger(auditLogger),
	)

	server := api.NewServer(cfg.Server.Addr(), svc)
	if d := cfg.Server.ReadHeaderTimeoutDuration(); d > 0 {
		server.ReadHeaderTimeout = d
	}
	if d := cfg.Server.ShutdownTimeoutDuration(); d > 0 {
		server.ShutdownTimeout = d
	}
	server.MaxRequestBytes = cfg.Server.MaxRequestBytes
	return server, nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
