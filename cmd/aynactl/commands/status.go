package commands

import (
	"github.com/spf13/cobra"

	"github.com/ayna/aynactl/cmd/aynactl/handlers"
)

// Status returns the command for displaying deployment status.
//
// This command shows the active release, the release history, the state
// of the systemd units, and current probe results. It is read-only and
// never mutates deployment state.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect ayna.yaml)
//	--watch, -w: Continuously watch status updates
//	--json: Output in JSON format
func Status() *cobra.Command {
	var configPath string
	var env string
	var watch bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show deployment status",
		Long: `Display the current deployment status of the project.

Shows:
  - The active release version and the release history
  - The state of each systemd unit
  - Live health probe results

Examples:
  # Show status
  aynactl status

  # Watch status continuously
  aynactl status --watch

  # Get status in JSON format
  aynactl status --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, env, watch, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ayna.yaml)")
	cmd.Flags().StringVarP(&env, "environment", "e", "", "Environment whose services to inspect (default: production)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Continuously watch status updates")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
