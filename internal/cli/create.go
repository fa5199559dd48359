package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvrtool/pvr/pkg/errors"
	"github.com/pvrtool/pvr/pkg/pyenv"
)

// createCommand creates the "create" subcommand.
func (c *CLI) createCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new virtual environment",
		Long:  `Create a new virtual environment with the given name and bootstrap pip into it from the configured package index.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			name := args[0]
			target := cfg.EnvPath(name)
			if pyenv.Exists(target) {
				return errors.New(errors.ErrCodeEnvironmentExists,
					"an environment named %s already exists", name)
			}

			c.Logger.Debug("creating environment", "name", name, "path", target)
			builder := pyenv.NewBuilder(cfg.Python)
			if err := builder.Create(cmd.Context(), target); err != nil {
				return err
			}

			inst := c.newInstaller(cfg, target)
			defer inst.Close()

			spinner := newSpinner(cmd.Context(), "Bootstrapping pip")
			spinner.Start()
			if err := inst.Install(cmd.Context()); err != nil {
				spinner.Stop()
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Environment %s ready", name))
			printDetail("Path: %s", target)
			return nil
		},
	}
}
