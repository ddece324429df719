package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/xdg/cmdapi/internal/clog"
)

// Validate checks that all fields of cfg contain usable values:
//   - server.port is 1-65535
//   - execute.shell splits into words
//   - duration strings parse and are non-negative
//   - execute.default_timeout is positive; plan.default_timeout is not negative
//   - server.max_request_bytes is non-negative
//   - log.level is one of: debug, info, warn, error (if non-empty)
//
// Returns nil if the config is valid, or an error naming the invalid field.
func Validate(cfg *Config) error {
	if strings.ContainsAny(cfg.Server.Host, " \t\n") {
		return fmt.Errorf("server.host: invalid host %q", cfg.Server.Host)
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port: invalid port number %d, must be 1-65535", cfg.Server.Port)
	}
	if err := validateDuration(cfg.Server.ReadHeaderTimeout, "server.read_header_timeout"); err != nil {
		return err
	}
	if err := validateDuration(cfg.Server.ShutdownTimeout, "server.shutdown_timeout"); err != nil {
		return err
	}
	if cfg.Server.MaxRequestBytes < 0 {
		return fmt.Errorf("server.max_request_bytes: must be non-negative, got %d", cfg.Server.MaxRequestBytes)
	}

	if cfg.Execute.DefaultTimeout <= 0 {
		return fmt.Errorf("execute.default_timeout: must be positive, got %d", cfg.Execute.DefaultTimeout)
	}
	if _, _, err := cfg.Execute.ShellArgv(); err != nil {
		return fmt.Errorf("execute.shell: %w", err)
	}
	if err := validateDuration(cfg.Execute.WaitDelay, "execute.wait_delay"); err != nil {
		return err
	}

	if cfg.Plan.DefaultTimeout < 0 {
		return fmt.Errorf("plan.default_timeout: must be non-negative, got %d", cfg.Plan.DefaultTimeout)
	}

	if cfg.Log.Level != "" && !clog.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level: invalid value %q, must be one of: debug, info, warn, error", cfg.Log.Level)
	}

	return nil
}

// validateDuration validates that a non-empty duration string can be
// parsed by time.ParseDuration and is not negative.
func validateDuration(d, field string) error {
	if d == "" {
		return nil
	}
	parsed, err := time.ParseDuration(d)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q", field, d)
	}
	if parsed < 0 {
		return fmt.Errorf("%s: must be non-negative, got %s", field, d)
	}
	return nil
}
