package handlers

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// runPassthrough runs a command with the terminal's stdio attached - can
// be replaced in tests.
var runPassthrough = func(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Logs handles the logs command.
//
// This function follows the journal for the environment's units, or for
// a single unit when one is named. It streams until interrupted.
func Logs(ctx context.Context, configPath, env, unit string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	env, envCfg, err := resolveEnvironment(cfg, env)
	if err != nil {
		return err
	}

	units := envCfg.Services
	if unit != "" {
		units = []string{unit}
	}
	if len(units) == 0 {
		return fmt.Errorf("environment %q has no services to follow", env)
	}

	args := []string{"-f"}
	for _, u := range units {
		args = append(args, "-u", u)
	}
	return runPassthrough(ctx, "journalctl", args...)
}
