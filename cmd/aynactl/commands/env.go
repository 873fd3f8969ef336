package commands

import (
	"github.com/spf13/cobra"

	"github.com/ayna/aynactl/cmd/aynactl/handlers"
)

// Env returns the parent command for environment file management.
func Env() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage environment files",
	}

	cmd.AddCommand(envSetup())
	cmd.AddCommand(envCheck())
	return cmd
}

func envSetup() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "setup [environment]",
		Short: "Point .env at an environment's dotenv file",
		Long: `Create the shared directory tree and repoint the project's .env
symlink at the named environment's dotenv file.

Examples:
  # Point .env at shared/.env.production
  aynactl env setup production`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := ""
			if len(args) > 0 {
				env = args[0]
			}
			return handlers.EnvSetup(cmd.Context(), configPath, env)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ayna.yaml)")
	return cmd
}

func envCheck() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the environment setup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.EnvCheck(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ayna.yaml)")
	return cmd
}
