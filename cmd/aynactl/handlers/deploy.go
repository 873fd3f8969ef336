package handlers

import (
	"context"
	"fmt"

	"github.com/ayna/aynactl/internal/deploy"
)

// Deploy handles the deploy command.
//
// This function provisions a new release, switches the current pointer,
// reloads services, and gates the result on health checks. On an
// unhealthy release it rolls back to the previous one.
func Deploy(ctx context.Context, configPath, env string, skipBackup bool) error {
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
	report, deployErr := deployer.Deploy(ctx, env, deploy.Options{SkipBackup: skipBackup})
	if report != nil {
		fmt.Print(renderReport(cfg.Project, report))
	}
	return deployErr
}
