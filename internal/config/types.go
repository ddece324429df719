// Package config provides the cmdapi configuration types. They map to a
// single YAML file, typically ~/.config/cmdapi/config.yaml.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/google/shlex"
)

// Config is the top-level cmdapi configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Execute ExecuteConfig `yaml:"execute"`
	Plan    PlanConfig    `yaml:"plan"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	ReadHeaderTimeout string `yaml:"read_header_timeout,omitempty"`
	ShutdownTimeout   string `yaml:"shutdown_timeout,omitempty"`
	MaxRequestBytes   int64  `yaml:"max_request_bytes,omitempty"`
}

// ExecuteConfig contains settings for arbitrary command execution.
type ExecuteConfig struct {
	// Shell runs commands as "<shell> -c <command>". It may carry extra
	// arguments, split with shell quoting rules (e.g., "bash --noprofile").
	// Empty uses /bin/sh.
	Shell string `yaml:"shell,omitempty"`

	// DefaultTimeout in seconds, applied when a request has none.
	DefaultTimeout int `yaml:"default_timeout"`

	// WaitDelay bounds how long to wait for output pipes after the child
	// exits or is killed.
	WaitDelay string `yaml:"wait_delay,omitempty"`
}

// PlanConfig contains settings for the planning command.
type PlanConfig struct {
	// DefaultTimeout in seconds. Zero means no timeout.
	DefaultTimeout int `yaml:"default_timeout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level     string `yaml:"level,omitempty"`
	File      string `yaml:"file,omitempty"`
	AuditFile string `yaml:"audit_file,omitempty"`
}

// Addr returns the listen address as host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ReadHeaderTimeoutDuration returns the parsed read header timeout.
// Empty or invalid values yield zero.
func (s ServerConfig) ReadHeaderTimeoutDuration() time.Duration {
	return parseDurationOrZero(s.ReadHeaderTimeout)
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout.
// Empty or invalid values yield zero.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return parseDurationOrZero(s.ShutdownTimeout)
}

// WaitDelayDuration returns the parsed wait delay.
// Empty or invalid values yield zero.
func (e ExecuteConfig) WaitDelayDuration() time.Duration {
	return parseDurationOrZero(e.WaitDelay)
}

// ShellArgv splits Shell into the interpreter path and its arguments.
// An empty Shell yields an empty path and no arguments.
func (e ExecuteConfig) ShellArgv() (string, []string, error) {
	words, err := shlex.Split(e.Shell)
	if err != nil {
		return "", nil, fmt.Errorf("split %q: %w", e.Shell, err)
	}
	if len(words) == 0 {
		return "", nil, nil
	}
	return words[0], words[1:], nil
}

func parseDurationOrZero(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
