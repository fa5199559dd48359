// Package pyenv wraps the platform facilities behind environment management:
// creating a virtual environment, removing one, and running a command with
// the environment's bin directory on the search path.
//
// These are thin collaborators around exec and the filesystem; the artifact
// resolution core in pkg/index, pkg/store, and pkg/installer never calls the
// platform directly.
package pyenv

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pvrtool/pvr/pkg/errors"
)

// DefaultPython is the interpreter used to build environments when the
// configuration doesn't name one.
const DefaultPython = "python3"

// Builder creates virtual environments by shelling out to the interpreter's
// venv module.
type Builder struct {
	// Python is the interpreter to build environments with.
	Python string
}

// NewBuilder returns a Builder using the given interpreter, falling back to
// [DefaultPython] when python is empty.
func NewBuilder(python string) *Builder {
	if python == "" {
		python = DefaultPython
	}
	return &Builder{Python: python}
}

// Create builds a fresh virtual environment at target.
// The environment has no system site packages and is never cleared if it
// already exists; callers check for existence first.
func (b *Builder) Create(ctx context.Context, target string) error {
	cmd := exec.CommandContext(ctx, b.Python, "-m", "venv", target)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "creating environment at %s: %s",
			target, strings.TrimSpace(string(out)))
	}
	return nil
}

// Exists reports whether an environment directory is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes the environment rooted at path.
func Remove(path string) error {
	return os.RemoveAll(path)
}

// BinDir returns the executable directory of the environment at path.
func BinDir(path string) string {
	return filepath.Join(path, "bin")
}

// PythonPath returns the environment's own interpreter.
func PythonPath(path string) string {
	return filepath.Join(BinDir(path), "python")
}

// Run executes name inside the environment at env: the environment's bin
// directory is prepended to PATH, stdio is forwarded, and the child's exit
// code is returned once it finishes. A zero exit code means success.
//
// Names containing a path separator are used as-is; bare names are looked up
// on the modified PATH, so commands installed into the environment shadow
// system ones.
func Run(ctx context.Context, env, name string, args ...string) (int, error) {
	searchPath := BinDir(env) + string(os.PathListSeparator) + os.Getenv("PATH")

	resolved := name
	if !strings.ContainsRune(name, os.PathSeparator) {
		var err error
		resolved, err = lookPath(name, searchPath)
		if err != nil {
			return 0, err
		}
	}

	cmd := exec.CommandContext(ctx, resolved, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = overridePath(os.Environ(), searchPath)

	err := cmd.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "running %s", name)
	}
	return 0, nil
}

// lookPath searches for an executable named name in the directories of the
// given PATH value. exec.LookPath consults the process's own PATH, which
// doesn't include the environment's bin directory yet.
func lookPath(name, searchPath string) (string, error) {
	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0o111 != 0 {
			return candidate, nil
		}
	}
	return "", errors.New(errors.ErrCodeCommandNotFound, "command not found: %s", name)
}

// overridePath returns environ with its PATH entry replaced by searchPath.
func overridePath(environ []string, searchPath string) []string {
	out := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		if !strings.HasPrefix(kv, "PATH=") {
			out = append(out, kv)
		}
	}
	return append(out, "PATH="+searchPath)
}
