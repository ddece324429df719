package cmd

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/xdg/cmdapi/internal/client"
	"github.com/xdg/cmdapi/internal/clog"
	"github.com/xdg/cmdapi/internal/config"
	"github.com/xdg/cmdapi/internal/testutil"
)

func clearServeEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvHost, config.EnvPort, config.EnvLogLevel, config.EnvShell} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()
	return port
}

func TestLoadServeConfig_FlagsOverrideConfig(t *testing.T) {
	clearServeEnv(t)
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  host: 10.1.1.1\n  port: 7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	configPath = path

	cfg, err := loadServeConfig(serveCmd)
	if err != nil {
		t.Fatalf("loadServeConfig() error = %v", err)
	}
	if got := cfg.Server.Addr(); got != "10.1.1.1:7000" {
		t.Errorf("addr = %q, want config value", got)
	}

	if err := serveCmd.Flags().Set("port", "7001"); err != nil {
		t.Fatal(err)
	}
	if err := serveCmd.Flags().Set("host", "127.0.0.1"); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadServeConfig(serveCmd)
	if err != nil {
		t.Fatalf("loadServeConfig() error = %v", err)
	}
	if got := cfg.Server.Addr(); got != "127.0.0.1:7001" {
		t.Errorf("addr = %q, want flag values", got)
	}
}

func TestLoadServeConfig_InvalidPortFlag(t *testing.T) {
	clearServeEnv(t)
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	if err := serveCmd.Flags().Set("port", "70000"); err != nil {
		t.Fatal(err)
	}
	if _, err := loadServeConfig(serveCmd); err == nil || !strings.Contains(err.Error(), "server.port") {
		t.Errorf("loadServeConfig() error = %v, want server.port error", err)
	}
}

func TestNewServer_AppliesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 9999
	cfg.Server.ShutdownTimeout = "3s"
	cfg.Server.ReadHeaderTimeout = "4s"
	cfg.Server.MaxRequestBytes = 512

	cfg.Execute.Shell = "/bin/bash --noprofile"

	server, err := newServer(cfg, nil)
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}

	if server.Addr != "127.0.0.1:9999" {
		t.Errorf("Addr = %q", server.Addr)
	}
	if server.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %v", server.ShutdownTimeout)
	}
	if server.ReadHeaderTimeout != 4*time.Second {
		t.Errorf("ReadHeaderTimeout = %v", server.ReadHeaderTimeout)
	}
	if server.MaxRequestBytes != 512 {
		t.Errorf("MaxRequestBytes = %d", server.MaxRequestBytes)
	}
}

func TestIsLoopback(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"127.0.0.1", true},
		{"::1", true},
		{"localhost", true},
		{"0.0.0.0", false},
		{"", false},
		{"192.168.1.10", false},
	}
	for _, tc := range tests {
		if got := isLoopback(tc.host); got != tc.want {
			t.Errorf("isLoopback(%q) = %v, want %v", tc.host, got, tc.want)
		}
	}
}

func TestServe_RunsUntilCanceled(t *testing.T) {
	clearServeEnv(t)
	clog.Discard()
	t.Cleanup(clog.Reset)

	port := freePort(t)
	auditPath := filepath.Join(t.TempDir(), "audit.log")
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfgData := "log:\n  audit_file: " + auditPath + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfgData), 0o600); err != nil {
		t.Fatal(err)
	}

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	rootCmd.SetArgs([]string{"serve", "--config", cfgPath, "--host", "127.0.0.1", "--port", strconv.Itoa(port)})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()

	c := client.New("127.0.0.1:" + strconv.Itoa(port))
	c.HTTPClient = testutil.NoProxyClient()

	deadline := time.Now().Add(5 * time.Second)
	for {
		status, err := c.Health(context.Background())
		if err == nil {
			if status != "healthy" {
				t.Fatalf("health = %q", status)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not come up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve returned error: %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}

	if _, err := os.Stat(auditPath); err != nil {
		t.Errorf("audit log not created: %v", err)
	}
}
