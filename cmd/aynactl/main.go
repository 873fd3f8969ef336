// Package main is the entry point for the aynactl CLI.
//
// aynactl drives versioned, atomic, health-gated blue-green deployments
// for projects laid out under a releases/current directory scheme. Each
// deploy materializes a new immutable release, switches a single symlink
// to it, verifies liveness, and rolls back automatically when the new
// release is unhealthy.
//
// Commands: init, deploy, rollback, status, prune, backup, env,
// services, logs.
//
// For detailed usage information, run:
//
//	aynactl --help
package main

import (
	"fmt"
	"os"

	"github.com/ayna/aynactl/cmd/aynactl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
