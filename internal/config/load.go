package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xdg/cmdapi/internal/clog"
	"github.com/xdg/cmdapi/internal/pathutil"
)

// Environment variables that override the configuration file.
const (
	EnvHost     = "CMDAPI_HOST"
	EnvPort     = "CMDAPI_PORT"
	EnvLogLevel = "CMDAPI_LOG_LEVEL"
	EnvShell    = "CMDAPI_SHELL"
)

// Load reads the configuration file at path, applies environment overrides
// and validates the result. An empty path means Path(); a missing default
// file yields Default(), but a missing explicit path is an error.
// All paths containing ~ are expanded to the actual home directory.
func Load(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}
	path = pathutil.ExpandHome(path)
	clog.Debug("config: loading %s", path)

	cfg, err := readFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			clog.Debug("config: file not found, using defaults")
			cfg = Default()
		} else {
			return nil, err
		}
	}

	if err := applyEnv(cfg, getenv); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	expandPaths(cfg)
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overrides cfg with any non-empty environment variables.
func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvHost)); v != "" {
		cfg.Server.Host = v
	}
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		cfg.Server.Port = port
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvShell)); v != "" {
		cfg.Execute.Shell = v
	}
	return nil
}

// expandPaths expands ~ to the home directory in all path fields.
func expandPaths(cfg *Config) {
	cfg.Log.File = pathutil.ExpandHome(cfg.Log.File)
	cfg.Log.AuditFile = pathutil.ExpandHome(cfg.Log.AuditFile)
}
