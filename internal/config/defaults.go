package config

// Default returns a Config with all defaults populated.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8000,
			ReadHeaderTimeout: "30s",
			ShutdownTimeout:   "10s",
			MaxRequestBytes:   1 << 20,
		},
		Execute: ExecuteConfig{
			Shell:          "/bin/sh",
			DefaultTimeout: 30,
			WaitDelay:      "2s",
		},
		Plan: PlanConfig{
			DefaultTimeout: 6000000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// defaultConfigTemplate is written by WriteDefault. It documents every
// setting and leaves the defaults commented out.
const defaultConfigTemplate = `# cmdapi configuration
#
# Values shown are the defaults. Environment variables CMDAPI_HOST,
# CMDAPI_PORT, CMDAPI_LOG_LEVEL and CMDAPI_SHELL override this file.

server:
  # Anyone who can reach this address can run commands as this user.
  host: "0.0.0.0"
  port: 8000
  # read_header_timeout: 30s
  # shutdown_timeout: 10s
  # max_request_bytes: 1048576

execute:
  # shell: /bin/sh
  # Seconds; requests may override with "timeout".
  default_timeout: 30
  # How long to wait for output pipes after the child exits or is killed.
  # wait_delay: 2s

plan:
  # Seconds; 0 disables the timeout.
  default_timeout: 6000000

log:
  # debug, info, warn or error
  # level: info
  # file: ~/.local/state/cmdapi/cmdapi.log
  # Execution events (START, COMPLETE, TIMEOUT, ERROR); off when unset.
  # audit_file: ~/.local/state/cmdapi/audit.log
`
