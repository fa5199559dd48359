package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRootCommand_Subcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"create":     false,
		"remove":     false,
		"exec":       false,
		"install":    false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestCreateCommand_RequiresName(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"create"})

	if err := root.Execute(); err == nil {
		t.Error("create with no arguments succeeded, want an argument error")
	}
}

func TestRemoveCommand_MissingEnvironment(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := "environments_dir = " + quote(filepath.Join(dir, "envs")) + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--config", configPath, "remove", "ghost"})

	if err := root.Execute(); err == nil {
		t.Error("remove of a missing environment succeeded, want ENVIRONMENT_NOT_FOUND")
	}
}

func TestCachePathCommand_PrintsConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	configPath := filepath.Join(dir, "config.toml")
	content := "cache_dir = " + quote(cacheDir) + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out := captureStdout(t, func() {
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		root.SetArgs([]string{"--config", configPath, "cache", "path"})
		if err := root.Execute(); err != nil {
			t.Errorf("cache path failed: %v", err)
		}
	})

	if got := string(bytes.TrimSpace(out)); got != cacheDir {
		t.Errorf("cache path printed %q, want %q", got, cacheDir)
	}
}

func quote(s string) string { return `"` + s + `"` }

// captureStdout redirects os.Stdout for the duration of fn.
// The cache and status helpers print straight to stdout.
func captureStdout(t *testing.T, fn func()) []byte {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return out
}
