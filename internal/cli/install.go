package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvrtool/pvr/pkg/errors"
	"github.com/pvrtool/pvr/pkg/pyenv"
)

// installCommand creates the "install" subcommand, which re-runs the pip
// bootstrap against an existing environment. Useful after a partially failed
// create or to pick up a newer pip release.
func (c *CLI) installCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install NAME",
		Short: "Bootstrap pip into an existing virtual environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			name := args[0]
			target := cfg.EnvPath(name)
			if !pyenv.Exists(target) {
				return errors.New(errors.ErrCodeEnvironmentNotFound,
					"no environment named %s", name)
			}

			inst := c.newInstaller(cfg, target)
			defer inst.Close()

			spinner := newSpinner(cmd.Context(), "Bootstrapping pip")
			spinner.Start()
			if err := inst.Install(cmd.Context()); err != nil {
				spinner.Stop()
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("pip installed into %s", name))
			return nil
		},
	}
}
