package commands

import (
	"github.com/spf13/cobra"

	"github.com/ayna/aynactl/cmd/aynactl/handlers"
)

// Deploy returns the command for running a full blue-green deployment.
//
// The deployment backs up the database, provisions a new release
// directory, atomically switches the current pointer to it, reloads the
// services, and verifies health. A failed health check rolls back to the
// previous release.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect ayna.yaml)
//	--skip-backup: Skip the pre-deploy database backup
func Deploy() *cobra.Command {
	var configPath string
	var skipBackup bool

	cmd := &cobra.Command{
		Use:   "deploy [environment]",
		Short: "Deploy a new release",
		Long: `Run a full blue-green deployment for an environment.

The deployment:
  1. Backs up the database (unless --skip-backup)
  2. Provisions a new release directory (snapshot, install, migrate, collectstatic)
  3. Atomically switches the current pointer to the new release
  4. Reloads the services
  5. Verifies health and rolls back to the previous release on failure
  6. Prunes old releases on success

The exit code is 0 only when the new release was committed; any failure
or rollback exits 1.

Examples:
  # Deploy to production (the default environment)
  aynactl deploy

  # Deploy to staging without a database backup
  aynactl deploy staging --skip-backup`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := ""
			if len(args) > 0 {
				env = args[0]
			}
			return handlers.Deploy(cmd.Context(), configPath, env, skipBackup)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ayna.yaml)")
	cmd.Flags().BoolVar(&skipBackup, "skip-backup", false, "Skip the pre-deploy database backup")

	return cmd
}
