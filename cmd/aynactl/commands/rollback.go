package commands

import (
	"github.com/spf13/cobra"

	"github.com/ayna/aynactl/cmd/aynactl/handlers"
)

// Rollback returns the command for instantly reverting to the previous release.
//
// Rollback repoints the current symlink at the next-most-recent release
// and reloads the services. It does not run a health check of its own:
// the previous release is assumed to still be good.
func Rollback() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rollback [environment]",
		Short: "Roll back to the previous release",
		Long: `Instantly roll back to the previous release.

Fails when no release is currently active or when no older release
exists to roll back to; in both cases nothing is changed and the exit
code is 1.

Examples:
  # Roll back production
  aynactl rollback

  # Roll back staging
  aynactl rollback staging`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := ""
			if len(args) > 0 {
				env = args[0]
			}
			return handlers.Rollback(cmd.Context(), configPath, env)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ayna.yaml)")

	return cmd
}
