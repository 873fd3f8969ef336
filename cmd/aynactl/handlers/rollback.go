package handlers

import (
	"context"
	"fmt"
)

// Rollback handles the rollback command.
//
// This function repoints the current release at the next-most-recent one
// and reloads services. No health check runs; the target release is
// assumed to have been healthy when it was last active.
func Rollback(ctx context.Context, configPath, env string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	env, _, err = resolveEnvironment(cfg, env)
	if err != nil {
		return err
	}

	unlock, err := acquireLock(cfg.LockPath())
	if err != nil {
		return err
	}
	defer unlock()

	deployer := buildDeployer(cfg)
	report, err := deployer.Rollback(ctx, env)
	if err != nil {
		return err
	}

	fmt.Print(renderReport(cfg.Project, report))
	return nil
}
