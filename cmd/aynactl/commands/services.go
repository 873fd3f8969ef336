package commands

import (
	"github.com/spf13/cobra"

	"github.com/ayna/aynactl/cmd/aynactl/handlers"
)

// Services returns the parent command for service management.
func Services() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Manage the project's systemd services",
	}

	for _, action := range []string{"start", "stop", "restart", "reload"} {
		cmd.AddCommand(servicesAction(action))
	}
	cmd.AddCommand(servicesStatus())
	return cmd
}

func servicesAction(action string) *cobra.Command {
	var configPath string
	var env string

	cmd := &cobra.Command{
		Use:   action,
		Short: action + " all services",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ServicesAction(cmd.Context(), configPath, env, action)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ayna.yaml)")
	cmd.Flags().StringVarP(&env, "environment", "e", "", "Environment whose services to manage (default: production)")
	return cmd
}

func servicesStatus() *cobra.Command {
	var configPath string
	var env string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show service states",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ServicesStatus(cmd.Context(), configPath, env)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ayna.yaml)")
	cmd.Flags().StringVarP(&env, "environment", "e", "", "Environment whose services to inspect (default: production)")
	return cmd
}
