package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pvrtool/pvr/pkg/errors"
)

func TestDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	if cfg.IndexURL != "https://pypi.org/simple/" {
		t.Errorf("IndexURL = %q, want the public simple index", cfg.IndexURL)
	}
	if want := filepath.Join("/tmp/xdg-cache", "pvr"); cfg.CacheDir != want {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, want)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".pvr", "envs"); cfg.EnvironmentsDir != want {
		t.Errorf("EnvironmentsDir = %q, want %q", cfg.EnvironmentsDir, want)
	}
	if cfg.RetryAttempts != 0 {
		t.Errorf("RetryAttempts = %d, want 0 (retries off by default)", cfg.RetryAttempts)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	defaults, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaults {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, defaults)
	}
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
index_url = "https://mirror.example/simple/"
cache_dir = "/var/cache/pvr"
python = "python3.12"
retry_attempts = 3
timeout_seconds = 30
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.IndexURL != "https://mirror.example/simple/" {
		t.Errorf("IndexURL = %q, want the mirror", cfg.IndexURL)
	}
	if cfg.CacheDir != "/var/cache/pvr" {
		t.Errorf("CacheDir = %q, want /var/cache/pvr", cfg.CacheDir)
	}
	if cfg.Python != "python3.12" {
		t.Errorf("Python = %q, want python3.12", cfg.Python)
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %d, want 3", cfg.RetryAttempts)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", cfg.Timeout())
	}

	// Unset fields keep their defaults.
	defaults, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.EnvironmentsDir != defaults.EnvironmentsDir {
		t.Errorf("EnvironmentsDir = %q, want default %q", cfg.EnvironmentsDir, defaults.EnvironmentsDir)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("index_url = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() failed: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-config", "pvr", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestEnvPath(t *testing.T) {
	cfg := Config{EnvironmentsDir: "/envs"}
	if got, want := cfg.EnvPath("web"), filepath.Join("/envs", "web"); got != want {
		t.Errorf("EnvPath() = %q, want %q", got, want)
	}
}
