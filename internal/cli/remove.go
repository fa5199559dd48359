package cli

import (
	"github.com/spf13/cobra"

	"github.com/pvrtool/pvr/pkg/errors"
	"github.com/pvrtool/pvr/pkg/pyenv"
)

// removeCommand creates the "remove" subcommand.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an existing virtual environment",
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

			if err := pyenv.Remove(target); err != nil {
				return err
			}
			printSuccess("Removed environment %s", name)
			return nil
		},
	}
}
