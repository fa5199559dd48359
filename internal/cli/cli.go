// Package cli implements the pvr command-line interface.
//
// This package provides commands for creating, removing, and executing into
// disposable Python virtual environments, plus management of the artifact
// cache. Commands are thin wrappers: all real work happens in the pkg
// packages, and every failure propagates up to main, which prints the
// message and exits non-zero.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pvrtool/pvr/pkg/buildinfo"
	"github.com/pvrtool/pvr/pkg/config"
	"github.com/pvrtool/pvr/pkg/installer"
)

// appName is the application name used for directories and display.
const appName = "pvr"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "pvr manages disposable Python virtual environments",
		Long:         `pvr creates isolated, disposable Python virtual environments and bootstraps pip into them from the newest wheel on a package index, caching downloads so repeated creates stay off the network.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to the config file")

	// Register all subcommands
	root.AddCommand(c.createCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.execCommand())
	root.AddCommand(c.installCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration honoring the --config flag.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newInstaller creates an installer for the given environment, wired with
// the CLI's logger and the configured index, cache, and network settings.
// The caller owns the returned installer and must Close it.
func (c *CLI) newInstaller(cfg config.Config, target string) *installer.Installer {
	return installer.New(target, installer.Options{
		IndexURL: cfg.IndexURL,
		CacheDir: cfg.CacheDir,
		Attempts: cfg.RetryAttempts,
		Timeout:  cfg.Timeout(),
		Logger:   c.Logger,
	})
}
