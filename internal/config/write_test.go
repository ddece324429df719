package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteDefault_Creates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := WriteDefault("", false)
	if err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if path != Path() {
		t.Errorf("WriteDefault() path = %q, want %q", path, Path())
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("os.Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	for _, section := range []string{"server:", "execute:", "plan:", "log:"} {
		if !strings.Contains(string(data), section) {
			t.Errorf("default config missing %q", section)
		}
	}

	if _, err := load(path, envMap(nil)); err != nil {
		t.Errorf("written default config does not load: %v", err)
	}
}

func TestWriteDefault_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("server:\n  port: 1234\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := WriteDefault(path, false)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("WriteDefault() error = %v, want ErrExist", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "1234") {
		t.Error("WriteDefault() overwrote existing file without overwrite")
	}

	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("WriteDefault(overwrite) error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if strings.Contains(string(data), "1234") {
		t.Error("WriteDefault(overwrite) did not replace the file")
	}
}

func TestWriteDefault_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.yaml")

	if _, err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}
