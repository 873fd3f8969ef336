package commands

import (
	"github.com/spf13/cobra"

	"github.com/ayna/aynactl/cmd/aynactl/handlers"
)

// Logs returns the command for following service logs.
func Logs() *cobra.Command {
	var configPath string
	var env string

	cmd := &cobra.Command{
		Use:   "logs [service]",
		Short: "Follow service logs",
		Long: `Stream journald logs for the project's services.

With no argument, logs from all of the environment's services are
interleaved. Naming a service follows that unit only.

Examples:
  # Follow all services
  aynactl logs

  # Follow just the web unit
  aynactl logs myproject-web`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit := ""
			if len(args) > 0 {
				unit = args[0]
			}
			return handlers.Logs(cmd.Context(), configPath, env, unit)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ayna.yaml)")
	cmd.Flags().StringVarP(&env, "environment", "e", "", "Environment whose services to follow (default: production)")

	return cmd
}
