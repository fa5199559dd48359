// Package installer bootstraps pip into a virtual environment.
//
// The Installer drives the whole pipeline: resolve the newest pip wheel on
// the index, materialize it through the content-addressed artifact store,
// then hand it to the environment's own interpreter to install. The artifact
// itself is never parsed here; correctness of the installed package is
// entirely delegated to the invoked interpreter.
//
// An Installer owns one HTTP session for its lifetime. Callers must release
// it with [Installer.Close] on every exit path:
//
//	inst := installer.New(target, installer.Options{CacheDir: cacheDir})
//	defer inst.Close()
//	if err := inst.Install(ctx); err != nil {
//	    return err
//	}
package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pvrtool/pvr/pkg/errors"
	"github.com/pvrtool/pvr/pkg/httputil"
	"github.com/pvrtool/pvr/pkg/index"
	"github.com/pvrtool/pvr/pkg/pyenv"
	"github.com/pvrtool/pvr/pkg/store"
)

// DefaultIndexURL is the package index consulted when none is configured.
const DefaultIndexURL = "https://pypi.org/simple/"

// bootstrapPackage is what gets installed into fresh environments.
const bootstrapPackage = "pip"

// Options configures an Installer.
type Options struct {
	// IndexURL is the simple index base URL. Defaults to [DefaultIndexURL].
	IndexURL string

	// CacheDir is the artifact cache root. Required.
	CacheDir string

	// Attempts is the number of tries per HTTP request. Values below 2
	// disable retries, which is the default behavior.
	Attempts int

	// Timeout bounds each HTTP request. Zero means no timeout.
	Timeout time.Duration

	// Logger receives progress output. Defaults to a discarding logger.
	Logger *log.Logger
}

// Installer orchestrates resolver, store, and the external pip bootstrap for
// a single target environment. It is single-threaded and blocking; every
// network call runs to completion on the calling goroutine.
type Installer struct {
	env      string
	session  *httputil.Session
	resolver *index.Resolver
	store    *store.Store
	logger   *log.Logger
}

// New creates an Installer for the environment rooted at env.
func New(env string, opts Options) *Installer {
	if opts.IndexURL == "" {
		opts.IndexURL = DefaultIndexURL
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	session := httputil.NewSession(httputil.Options{
		Attempts: opts.Attempts,
		Timeout:  opts.Timeout,
	})

	return &Installer{
		env:      env,
		session:  session,
		resolver: index.NewResolver(session, opts.IndexURL),
		store:    store.New(opts.CacheDir, session),
		logger:   opts.Logger,
	}
}

// Install locates the newest pip wheel, fetches it through the cache, and
// runs the environment's interpreter to install it.
//
// The interpreter is invoked as {env}/bin/python with the wheel's path both
// interpolated into the bootstrap expression and exported via PYTHONPATH, so
// pip can import itself from the wheel before it is installed. A non-zero
// exit is surfaced as INSTALL_ERROR; there is no retry and no rollback of
// partially created environment state.
func (i *Installer) Install(ctx context.Context) error {
	candidate, err := i.resolver.Find(ctx, bootstrapPackage)
	if err != nil {
		return err
	}
	i.logger.Debug("resolved bootstrap wheel",
		"version", candidate.Version.String(), "url", candidate.URL)

	artifact, err := i.store.Fetch(ctx, candidate)
	if err != nil {
		return err
	}
	i.logger.Debug("artifact ready", "path", artifact)

	cmd := exec.CommandContext(ctx, pyenv.PythonPath(i.env),
		"-c", fmt.Sprintf("import pip; pip.main(['install', %q])", artifact))
	cmd.Env = append(os.Environ(), "PYTHONPATH="+artifact)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeInstall, err, "pip bootstrap failed in %s", i.env)
	}
	i.logger.Debug("bootstrap complete", "environment", i.env)
	return nil
}

// Close releases the installer's HTTP session. The installer must not be
// used after Close.
func (i *Installer) Close() {
	i.session.Close()
}
