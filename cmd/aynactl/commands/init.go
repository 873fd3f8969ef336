package commands

import (
	"github.com/spf13/cobra"

	"github.com/ayna/aynactl/cmd/aynactl/handlers"
)

// Init returns the command for interactively creating a configuration file.
func Init() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Long: `Interactively create an ayna.yaml configuration file in the current
directory.

The wizard asks for the project name, root directory, ports, and
environments, and writes a config with sensible defaults for the rest.

Examples:
  # Create ayna.yaml
  aynactl init`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context())
		},
	}
}
