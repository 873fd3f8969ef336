package commands

import (
	"github.com/spf13/cobra"

	"github.com/ayna/aynactl/cmd/aynactl/handlers"
)

// Prune returns the command for manually removing old releases.
func Prune() *cobra.Command {
	var configPath string
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old releases",
		Long: `Remove release directories that are neither among the most recent
nor currently active. The active release is never removed, even with
--keep 0.

Examples:
  # Prune using the configured retention policy
  aynactl prune

  # Keep only the three most recent releases (plus the active one)
  aynactl prune --keep 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := keep
			if !cmd.Flags().Changed("keep") {
				k = -1
			}
			return handlers.Prune(cmd.Context(), configPath, k)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ayna.yaml)")
	cmd.Flags().IntVar(&keep, "keep", 0, "Number of recent releases to retain (default: configured retention.keep)")

	return cmd
}
