package commands

import (
	"github.com/spf13/cobra"

	"github.com/ayna/aynactl/cmd/aynactl/handlers"
)

// Backup returns the command for creating a standalone database backup.
func Backup() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "backup [environment]",
		Short: "Create a database backup",
		Long: `Create a database backup using pg_dump.

The database location is read from DATABASE_URL in the environment's
dotenv file. The archive is written to shared/backups and, when
backup.s3 is configured, uploaded offsite.

Examples:
  # Back up the production database
  aynactl backup

  # Back up the staging database
  aynactl backup staging`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := ""
			if len(args) > 0 {
				env = args[0]
			}
			return handlers.Backup(cmd.Context(), configPath, env)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ayna.yaml)")

	return cmd
}
