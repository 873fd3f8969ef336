// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the aynactl CLI.
//
// The root command serves as the entry point and parent for all
// subcommands. It provides basic CLI metadata and organizes the command
// hierarchy.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aynactl",
		Short: "Blue-green deployments with atomic switchover and automatic rollback",
	}

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Rollback())
	cmd.AddCommand(Status())
	cmd.AddCommand(Prune())

	// Collaborator commands
	cmd.AddCommand(Backup())
	cmd.AddCommand(Env())
	cmd.AddCommand(Services())
	cmd.AddCommand(Logs())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
