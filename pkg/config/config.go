// Package config loads pvr's configuration.
//
// Configuration lives in a TOML file at $XDG_CONFIG_HOME/pvr/config.toml
// (falling back to ~/.config/pvr/config.toml). A missing file is not an
// error; every field has a default. Example:
//
//	index_url = "https://pypi.org/simple/"
//	cache_dir = "/var/cache/pvr"
//	environments_dir = "~/.pvr/envs"
//	python = "python3.12"
//	retry_attempts = 3
//	timeout_seconds = 30
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pvrtool/pvr/pkg/errors"
)

// appName is used to derive the XDG config and cache directories.
const appName = "pvr"

// Config holds all tunable settings.
type Config struct {
	// IndexURL is the simple index base URL used to resolve pip wheels.
	IndexURL string `toml:"index_url"`

	// CacheDir is the root of the content-addressed artifact cache.
	CacheDir string `toml:"cache_dir"`

	// EnvironmentsDir is where named environments are created.
	EnvironmentsDir string `toml:"environments_dir"`

	// Python is the interpreter used to build new environments.
	Python string `toml:"python"`

	// RetryAttempts is the number of tries per HTTP request. Zero or one
	// means no retries, which preserves fail-fast fetch semantics.
	RetryAttempts int `toml:"retry_attempts"`

	// TimeoutSeconds bounds each HTTP request. Zero means no timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Default returns the configuration used when no file is present.
func Default() (Config, error) {
	cacheDir, err := defaultCacheDir()
	if err != nil {
		return Config{}, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		IndexURL:        "https://pypi.org/simple/",
		CacheDir:        cacheDir,
		EnvironmentsDir: filepath.Join(home, "."+appName, "envs"),
	}, nil
}

// Load reads the configuration file at path, overlaying it on the defaults.
// An empty path means [DefaultPath]. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	if path == "" {
		if path, err = DefaultPath(); err != nil {
			return Config{}, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing %s", path)
	}
	return cfg, nil
}

// DefaultPath returns the standard location of the configuration file.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// EnvPath returns the directory of the named environment.
func (c Config) EnvPath(name string) string {
	return filepath.Join(c.EnvironmentsDir, name)
}

// Timeout returns the configured HTTP timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// defaultCacheDir returns the cache directory using the XDG convention
// (~/.cache/pvr/).
func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
