package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pvrtool/pvr/pkg/errors"
	"github.com/pvrtool/pvr/pkg/pyenv"
)

// execCommand creates the "exec" subcommand.
//
// Flag parsing is disabled so that flags after the command name reach the
// child untouched: `pvr exec web python -V` passes -V to python.
func (c *CLI) execCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "exec NAME COMMAND [ARGS...]",
		Short:              "Execute a command inside a virtual environment",
		Long:               `Execute the given command with the named environment's bin directory prepended to PATH. The child's exit code becomes pvr's exit code.`,
		Args:               cobra.MinimumNArgs(2),
		DisableFlagParsing: true,
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

			code, err := pyenv.Run(cmd.Context(), target, args[1], args[2:]...)
			if err != nil {
				return err
			}
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
}
